package settings

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrAbsentValue indicates a reachable slot holds no concrete value
	// (nil pointer or nil interface) where one is required.
	ErrAbsentValue = errors.New("absent value")

	// ErrUnsupportedKeyType indicates a map whose key type is not a leaf.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrUnsupportedType indicates a type that fits no classification
	// (channels, functions, unsafe pointers).
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCyclicGraph indicates the encoder revisited a pointer or map
	// that is still being encoded.
	ErrCyclicGraph = errors.New("cyclic object graph")

	// ErrNilTarget indicates Export or Import was handed a nil root.
	ErrNilTarget = errors.New("nil target")

	// ErrRootMismatch indicates the document root element is not the
	// configured root name.
	ErrRootMismatch = errors.New("document root mismatch")

	// ErrMalformedName indicates an element name that cannot be unescaped.
	ErrMalformedName = errors.New("malformed element name")

	// ErrMalformedElement indicates element content (leaf text, sequence
	// index, mapping key) that cannot be parsed back to its type.
	ErrMalformedElement = errors.New("malformed element")

	// ErrUnknownElement indicates a composite child matching no slot.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnmarshal indicates the codec failed to parse the document.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to render the document.
	ErrMarshal = errors.New("marshal failed")
)

// SchemaError reports a type that cannot take part in a settings document.
// It is raised while classifying, before any document is produced or read.
type SchemaError struct {
	Err  error        // Underlying sentinel error (ErrUnsupportedKeyType, ErrUnsupportedType)
	Type reflect.Type // Offending type
	Path string       // Slot path from the root type, empty at the root
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s (slot %s)", e.Err.Error(), e.Type, e.Path)
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), e.Type)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValueError reports an object graph that cannot be walked.
type ValueError struct {
	Err  error  // Underlying sentinel error (ErrAbsentValue, ErrCyclicGraph, ErrNilTarget)
	Path string // Slot path where the walk stopped
}

func (e *ValueError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s", e.Err.Error(), e.Path)
	}
	return e.Err.Error()
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// SkipError describes a document element that import ignored.
// Skips are never returned from Import; they are reported through
// the skip handler and SignalElementSkipped.
type SkipError struct {
	Err     error  // ErrMalformedName, ErrMalformedElement or ErrUnknownElement
	Path    string // Slot path of the enclosing value
	Element string // Raw element name as found in the document
	Cause   error  // Parse error, when there is one
}

func (e *SkipError) Error() string {
	loc := e.Element
	if e.Path != "" {
		loc = e.Path + "/" + e.Element
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Err.Error(), loc, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), loc)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newSchemaError(sentinel error, typ reflect.Type, path string) error {
	return &SchemaError{Err: sentinel, Type: typ, Path: path}
}

func newValueError(sentinel error, path string) error {
	return &ValueError{Err: sentinel, Path: path}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{Err: sentinel, Cause: cause}
}
