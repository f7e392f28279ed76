// Package settings persists configuration objects as settings documents.
//
// Export walks an in-memory object graph and renders it as a tree of named
// elements under a single root; Import walks such a document together with
// a live instance of the same type and overwrites the slots it finds,
// leaving everything else in place.
//
// # Classification
//
// Every type is one of four kinds:
//
//   - Leaf: strings, booleans, numbers, time.Duration, []byte, and any type
//     implementing encoding.TextMarshaler and encoding.TextUnmarshaler
//     (enumerations use this to be written by symbol, not ordinal)
//   - Sequence: slices and arrays, written as children i_0, i_1, ...
//   - Mapping: maps whose key type is a leaf, one child per entry
//   - Composite: structs, one child per field, unexported fields included
//
// Pointers and interfaces are followed to the value they hold. Fields tagged
// `settings:"-"` are not part of their composite.
//
// # Document Shape
//
//	<Settings>
//	  <Volume>0.8</Volume>
//	  <Recent>
//	    <i_0>alpha</i_0>
//	    <i_1>beta</i_1>
//	  </Recent>
//	  <Binds>
//	    <jump>Space</jump>
//	  </Binds>
//	</Settings>
//
// Names are escaped with EncodeName so any field or key text yields a
// valid element name.
//
// # Import Semantics
//
//   - Sequences are always rebuilt from the document
//   - Mappings follow the Mode: Merge overwrites only keys the target
//     already holds, Replace swaps in the document's mapping
//   - Composites are updated slot by slot; unknown elements are skipped
//   - Unparseable leaf text, sequence indices and mapping keys are skipped,
//     leaving the previous value
//
// # Basic Usage
//
//	type Game struct {
//	    Volume float64
//	    Level  Difficulty
//	    Binds  map[string]string
//	}
//
//	eng, _ := settings.NewEngine[Game](xml.New())
//
//	data, _ := eng.Export(ctx, &current)
//	_, _ = eng.Import(ctx, data, &current, settings.Merge)
//
// # Codec Providers
//
// Documents are rendered by a Codec. The following implementations are
// available as subpackages:
//
//   - xml - XML elements (application/xml)
//   - yaml - YAML mappings (application/yaml)
//   - toml - TOML tables (application/toml)
//   - json - JSON node tree (application/json)
//   - msgpack - MessagePack node tree (application/msgpack)
//   - bson - BSON node tree (application/bson)
//
// # Observability
//
// Every operation emits capitan signals (see signals.go). Skipped elements
// are reported through SignalElementSkipped and WithSkipHandler.
package settings

// Codec renders settings documents.
//
// Marshal is called with a *Node holding the document root; Unmarshal is
// called with a *Node to fill. Codecs that can marshal arbitrary values may
// also accept other types.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/xml").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
