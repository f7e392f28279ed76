package settings

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/zoobzio/sentinel"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	rootName string
	autoInit bool
	skip     func(*SkipError)
	hasher   Hasher
}

func defaultOptions() options {
	return options{
		rootName: RootName,
		hasher:   BLAKE2bHasher(),
	}
}

// WithRootName sets the document root element name. The name must be a
// valid element name as is (EncodeName leaves it unchanged).
func WithRootName(name string) Option {
	return func(o *options) {
		o.rootName = name
	}
}

// WithAutoInit makes Import allocate nil pointer slots that the document
// addresses instead of failing with ErrAbsentValue.
func WithAutoInit() Option {
	return func(o *options) {
		o.autoInit = true
	}
}

// WithSkipHandler registers fn to receive every element Import ignores.
func WithSkipHandler(fn func(*SkipError)) Option {
	return func(o *options) {
		o.skip = fn
	}
}

// WithHasher sets the hasher used by Fingerprint.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// Engine exports and imports settings documents for type T.
//
// Engines are safe for concurrent use. Import mutates the target it is
// given; concurrent imports into the same target must be serialized by
// the caller.
type Engine[T any] struct {
	core *engine
}

// NewEngine creates an Engine for type T.
//
// T is classified up front: a map keyed by a non-leaf type, or a channel or
// function anywhere in T, fails here with a *SchemaError.
func NewEngine[T any](codec Codec, opts ...Option) (*Engine[T], error) {
	// Composites in T's module are registered with sentinel before planning.
	// Other types are scanned by hand.
	_, _ = sentinel.TryScan[T]()

	core, err := newEngine(codec, reflect.TypeFor[T](), opts)
	if err != nil {
		return nil, err
	}
	emitEngineCreated(context.Background(), codec.ContentType(), core.typeName)
	return &Engine[T]{core: core}, nil
}

// Export renders obj as a settings document. obj is not modified.
func (e *Engine[T]) Export(ctx context.Context, obj *T) ([]byte, error) {
	if obj == nil {
		return nil, newValueError(ErrNilTarget, "")
	}
	return e.core.export(ctx, reflect.ValueOf(obj).Elem())
}

// Import applies data to obj in place and returns obj.
//
// Hard failures (unreadable document, wrong root, absent values) are
// returned. Elements that do not fit obj are skipped and reported through
// SignalElementSkipped. If T implements Cloner[T], obj is only written when
// the whole document applied.
func (e *Engine[T]) Import(ctx context.Context, data []byte, obj *T, mode Mode) (*T, error) {
	if obj == nil {
		return nil, newValueError(ErrNilTarget, "")
	}

	if c, ok := any(obj).(Cloner[T]); ok {
		staged := c.Clone()
		if err := e.core.importInto(ctx, data, reflect.ValueOf(&staged).Elem(), mode); err != nil {
			return nil, err
		}
		*obj = staged
		return obj, nil
	}

	if err := e.core.importInto(ctx, data, reflect.ValueOf(obj).Elem(), mode); err != nil {
		return nil, err
	}
	return obj, nil
}

// Fingerprint exports obj and returns the digest of the document.
// Equal fingerprints mean an export would write identical bytes.
func (e *Engine[T]) Fingerprint(ctx context.Context, obj *T) (string, error) {
	data, err := e.Export(ctx, obj)
	if err != nil {
		return "", err
	}
	return e.core.opts.hasher.Hash(data), nil
}

// Export renders root as a settings document using codec.
// root may be a value or a pointer.
func Export(ctx context.Context, codec Codec, root any, opts ...Option) ([]byte, error) {
	rv := reflect.ValueOf(root)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return nil, newValueError(ErrNilTarget, "")
	}
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	} else {
		rv = addressable(rv)
	}

	core, err := newEngine(codec, rv.Type(), opts)
	if err != nil {
		return nil, err
	}
	return core.export(ctx, rv)
}

// Import applies data to root in place and returns root.
// root must be a non-nil pointer.
func Import(ctx context.Context, codec Codec, data []byte, root any, mode Mode, opts ...Option) (any, error) {
	rv := reflect.ValueOf(root)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, newValueError(ErrNilTarget, "")
	}

	core, err := newEngine(codec, rv.Type().Elem(), opts)
	if err != nil {
		return nil, err
	}
	if err := core.importInto(ctx, data, rv.Elem(), mode); err != nil {
		return nil, err
	}
	return root, nil
}

// engine is the untyped core shared by Engine[T] and the package functions.
type engine struct {
	codec    Codec
	plan     *typePlan
	typeName string
	opts     options
}

func newEngine(codec Codec, typ reflect.Type, opts []Option) (*engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rootName == "" || EncodeName(o.rootName) != o.rootName {
		return nil, fmt.Errorf("%w: root %q", ErrMalformedName, o.rootName)
	}

	plan, err := planFor(typ)
	if err != nil {
		return nil, err
	}

	return &engine{
		codec:    codec,
		plan:     plan,
		typeName: typ.String(),
		opts:     o,
	}, nil
}

// export renders v. v must be addressable.
func (e *engine) export(ctx context.Context, v reflect.Value) ([]byte, error) {
	start := time.Now()
	emitExportStart(ctx, e.codec.ContentType(), e.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitExportComplete(ctx, e.codec.ContentType(), e.typeName,
			len(retData), time.Since(start), retErr)
	}()

	doc, err := encodeDocument(e.opts.rootName, v, e.plan)
	if err != nil {
		retErr = fmt.Errorf("encode: %w", err)
		return nil, retErr
	}

	retData, err = e.codec.Marshal(doc)
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	return retData, nil
}

// importInto decodes data and applies it to v. v must be addressable.
func (e *engine) importInto(ctx context.Context, data []byte, v reflect.Value, mode Mode) error {
	start := time.Now()
	emitImportStart(ctx, e.codec.ContentType(), e.typeName, mode)

	d := &decoder{
		mode:     mode,
		autoInit: e.opts.autoInit,
		skip: func(skip *SkipError) {
			emitElementSkipped(ctx, e.typeName, skip)
			if e.opts.skip != nil {
				e.opts.skip(skip)
			}
		},
	}

	var retErr error
	defer func() {
		emitImportComplete(ctx, e.codec.ContentType(), e.typeName,
			len(data), time.Since(start), d.skipped, retErr)
	}()

	var doc Node
	if err := e.codec.Unmarshal(data, &doc); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return retErr
	}
	if doc.Name != e.opts.rootName {
		retErr = fmt.Errorf("%w: got %q, want %q", ErrRootMismatch, doc.Name, e.opts.rootName)
		return retErr
	}

	if err := d.decodeDocument(&doc, v, e.plan); err != nil {
		retErr = fmt.Errorf("decode: %w", err)
		return retErr
	}
	return nil
}
