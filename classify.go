package settings

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// tagName is the struct tag consulted for slot options.
// `settings:"-"` removes a field from its composite.
const tagName = "settings"

func init() {
	sentinel.Tag(tagName)
}

// Kind is the classification of a type within a settings document.
type Kind uint8

// Kinds, in classification priority order.
const (
	KindInvalid Kind = iota
	KindLeaf
	KindSequence
	KindMapping
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindComposite:
		return "composite"
	default:
		return "invalid"
	}
}

// shape is the closed set of plan variants. Pointers and interfaces are
// wrappers resolved while walking; every other shape is a Kind.
type shape uint8

const (
	shapeLeaf shape = iota + 1
	shapeSequence
	shapeMapping
	shapeComposite
	shapePointer
	shapeInterface
)

// typePlan describes how one type is walked. Plans are built once per
// type and shared by the encoder and decoder.
type typePlan struct {
	typ    reflect.Type
	shape  shape
	leaf   leafCodec      // shapeLeaf
	key    *typePlan      // shapeMapping
	elem   *typePlan      // shapeSequence items, shapeMapping values, shapePointer target
	slots  []slotPlan     // shapeComposite, declaration order
	byName map[string]int // decoded element name -> slots index
	meta   sentinel.Metadata
}

// slotPlan describes one member of a composite.
type slotPlan struct {
	name    string // member name
	element string // EncodeName(name)
	index   int
	plan    *typePlan
}

// kind resolves wrappers down to a Kind. Interfaces have no static kind.
func (p *typePlan) kind() Kind {
	switch p.shape {
	case shapeLeaf:
		return KindLeaf
	case shapeSequence:
		return KindSequence
	case shapeMapping:
		return KindMapping
	case shapeComposite:
		return KindComposite
	case shapePointer:
		return p.elem.kind()
	default:
		return KindInvalid
	}
}

// Classify returns the Kind of t.
//
// Pointers classify as their element type. Interface types have no static
// classification; their values are classified by dynamic type at walk time,
// so Classify reports ErrUnsupportedType for them.
func Classify(t reflect.Type) (Kind, error) {
	if t == nil {
		return KindInvalid, newSchemaError(ErrUnsupportedType, t, "")
	}
	p, err := planFor(t)
	if err != nil {
		return KindInvalid, err
	}
	k := p.kind()
	if k == KindInvalid {
		return KindInvalid, fmt.Errorf("%w: %s classifies by dynamic value", ErrUnsupportedType, t)
	}
	return k, nil
}

// ClassifyValue returns the Kind of v's dynamic type.
func ClassifyValue(v any) (Kind, error) {
	return Classify(reflect.TypeOf(v))
}

// plans holds finished plans keyed by type.
var plans = newSyncCache[reflect.Type, *typePlan]()

// planFor returns the cached plan for t or builds it. A build publishes
// every plan reachable from t, or nothing.
func planFor(t reflect.Type) (*typePlan, error) {
	return plans.load(t, func(tx *cacheTx[reflect.Type, *typePlan]) (*typePlan, error) {
		b := &planBuilder{tx: tx}
		return b.build(t, "")
	})
}

// resetPlans clears the plan cache.
func resetPlans() {
	plans.reset()
}

// planBuilder builds plans for a type graph. Plans are registered before
// they are filled in so self-referential types terminate.
type planBuilder struct {
	tx *cacheTx[reflect.Type, *typePlan]
}

func (b *planBuilder) build(t reflect.Type, path string) (*typePlan, error) {
	if p, ok := b.tx.get(t); ok {
		return p, nil
	}

	p := &typePlan{typ: t}
	b.tx.put(t, p)

	// Leaf
	if leaf, ok := leafFor(t); ok {
		p.shape = shapeLeaf
		p.leaf = leaf
		return p, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem, err := b.build(t.Elem(), path)
		if err != nil {
			return nil, err
		}
		p.shape = shapePointer
		p.elem = elem

	case reflect.Interface:
		p.shape = shapeInterface

	// Sequence
	case reflect.Slice, reflect.Array:
		elem, err := b.build(t.Elem(), path+"[]")
		if err != nil {
			return nil, err
		}
		p.shape = shapeSequence
		p.elem = elem

	// Mapping
	case reflect.Map:
		key, err := b.build(t.Key(), path)
		if err != nil {
			return nil, err
		}
		if key.shape != shapeLeaf {
			return nil, newSchemaError(ErrUnsupportedKeyType, t.Key(), path)
		}
		elem, err := b.build(t.Elem(), path+"[]")
		if err != nil {
			return nil, err
		}
		p.shape = shapeMapping
		p.key = key
		p.elem = elem

	// Composite
	case reflect.Struct:
		p.shape = shapeComposite
		p.meta = scanComposite(t)
		p.byName = make(map[string]int, len(p.meta.Fields))
		for _, field := range p.meta.Fields {
			if field.Name == "_" || field.Tags[tagName] == "-" {
				continue
			}
			slot, err := b.build(field.ReflectType, joinPath(path, field.Name))
			if err != nil {
				return nil, err
			}
			element := EncodeName(field.Name)
			decoded, err := DecodeName(element)
			if err != nil || decoded != field.Name {
				return nil, newSchemaError(ErrMalformedName, t, joinPath(path, field.Name))
			}
			p.byName[decoded] = len(p.slots)
			p.slots = append(p.slots, slotPlan{
				name:    field.Name,
				element: element,
				index:   field.Index[0],
				plan:    slot,
			})
		}

	default:
		return nil, newSchemaError(ErrUnsupportedType, t, path)
	}

	return p, nil
}

// scanComposite describes every member of struct type rt, exported or not.
// Exported members come from sentinel's registry when rt has been scanned
// there; the rest are read from the struct itself.
func scanComposite(rt reflect.Type) sentinel.Metadata {
	spec, ok := lookupComposite(rt)
	if !ok {
		spec = sentinel.Metadata{
			ReflectType: rt,
			TypeName:    rt.Name(),
			PackageName: rt.PkgPath(),
		}
	}

	registered := make(map[int]sentinel.FieldMetadata, len(spec.Fields))
	for _, fm := range spec.Fields {
		registered[fm.Index[0]] = fm
	}

	fields := make([]sentinel.FieldMetadata, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if fm, ok := registered[i]; ok {
			fields = append(fields, fm)
			continue
		}
		fields = append(fields, describeField(rt.Field(i)))
	}
	spec.Fields = fields

	return spec
}

// lookupComposite returns sentinel's metadata for rt. Unnamed and
// function-local types can share a registry name, so the entry must carry
// rt itself.
func lookupComposite(rt reflect.Type) (sentinel.Metadata, bool) {
	if rt.Name() == "" {
		return sentinel.Metadata{}, false
	}
	spec, ok := sentinel.Lookup(rt.PkgPath() + "." + rt.Name())
	if !ok || spec.ReflectType != rt {
		return sentinel.Metadata{}, false
	}
	return spec, true
}

func describeField(sf reflect.StructField) sentinel.FieldMetadata {
	fm := sentinel.FieldMetadata{
		Name:        sf.Name,
		Type:        sf.Type.String(),
		ReflectType: sf.Type,
		Index:       sf.Index,
		Tags:        map[string]string{},
	}
	if val, ok := sf.Tag.Lookup(tagName); ok {
		fm.Tags[tagName] = val
	}

	switch sf.Type.Kind() {
	case reflect.Struct:
		fm.Kind = sentinel.KindStruct
	case reflect.Ptr:
		fm.Kind = sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		fm.Kind = sentinel.KindSlice
	case reflect.Map:
		fm.Kind = sentinel.KindMap
	case reflect.Interface:
		fm.Kind = sentinel.KindInterface
	default:
		fm.Kind = sentinel.KindScalar
	}

	return fm
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
