package settings

import (
	"encoding"
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	// errEmptyNumber rejects blank numeric text, which cast reads as zero.
	errEmptyNumber = errors.New("empty number")
	// errNestedLeaf is the cause reported for a leaf element with children.
	errNestedLeaf = errors.New("leaf has child elements")
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// leafCodec converts one scalar type to and from its text form.
// format and parse both expect addressable values.
type leafCodec struct {
	format func(v reflect.Value) (string, error)
	parse  func(text string, dst reflect.Value) error
}

// leafFor returns the codec for t, or false if t is not a leaf.
//
// Types carrying their own text form win over their kind, so an
// enumeration declared as a named int with MarshalText/UnmarshalText
// is written by symbol rather than by ordinal.
func leafFor(t reflect.Type) (leafCodec, bool) {
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		reflect.PointerTo(t).Implements(textMarshalerType) &&
		reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return leafCodec{format: formatText, parse: parseText}, true
	}

	if t == durationType {
		return leafCodec{format: formatDuration, parse: parseDuration}, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return leafCodec{format: formatBool, parse: parseBool}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return leafCodec{format: formatInt, parse: parseInt}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return leafCodec{format: formatUint, parse: parseUint}, true
	case reflect.Float32, reflect.Float64:
		return leafCodec{format: formatFloat, parse: parseFloat}, true
	case reflect.Complex64, reflect.Complex128:
		return leafCodec{format: formatComplex, parse: parseComplex}, true
	case reflect.String:
		return leafCodec{format: formatString, parse: parseString}, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return leafCodec{format: formatBytes, parse: parseBytes}, true
		}
	}

	return leafCodec{}, false
}

func formatText(v reflect.Value) (string, error) {
	text, err := v.Addr().Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// parseText unmarshals into a scratch value so a rejected symbol
// leaves dst as it was.
func parseText(text string, dst reflect.Value) error {
	tmp := reflect.New(dst.Type())
	tmp.Elem().Set(dst)
	if err := tmp.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return err
	}
	dst.Set(tmp.Elem())
	return nil
}

func formatDuration(v reflect.Value) (string, error) {
	return time.Duration(v.Int()).String(), nil
}

func parseDuration(text string, dst reflect.Value) error {
	d, err := cast.ToDurationE(text)
	if err != nil {
		return err
	}
	dst.SetInt(int64(d))
	return nil
}

func formatBool(v reflect.Value) (string, error) {
	return strconv.FormatBool(v.Bool()), nil
}

func parseBool(text string, dst reflect.Value) error {
	b, err := cast.ToBoolE(text)
	if err != nil {
		return err
	}
	dst.SetBool(b)
	return nil
}

func formatInt(v reflect.Value) (string, error) {
	return strconv.FormatInt(v.Int(), 10), nil
}

// parseInt reads base 10 first; cast would take a leading zero as octal.
// Other forms cast accepts ("0x1f", "3.0") are tried after.
func parseInt(text string, dst reflect.Value) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyNumber
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if n, err = cast.ToInt64E(text); err != nil {
			return err
		}
	}
	if dst.OverflowInt(n) {
		return fmt.Errorf("%d overflows %s", n, dst.Type())
	}
	dst.SetInt(n)
	return nil
}

func formatUint(v reflect.Value) (string, error) {
	return strconv.FormatUint(v.Uint(), 10), nil
}

func parseUint(text string, dst reflect.Value) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyNumber
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		if n, err = cast.ToUint64E(text); err != nil {
			return err
		}
	}
	if dst.OverflowUint(n) {
		return fmt.Errorf("%d overflows %s", n, dst.Type())
	}
	dst.SetUint(n)
	return nil
}

func formatFloat(v reflect.Value) (string, error) {
	return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
}

func parseFloat(text string, dst reflect.Value) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyNumber
	}
	f, err := cast.ToFloat64E(text)
	if err != nil {
		return err
	}
	if dst.OverflowFloat(f) {
		return fmt.Errorf("%g overflows %s", f, dst.Type())
	}
	dst.SetFloat(f)
	return nil
}

func formatComplex(v reflect.Value) (string, error) {
	return strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()), nil
}

func parseComplex(text string, dst reflect.Value) error {
	c, err := strconv.ParseComplex(text, dst.Type().Bits())
	if err != nil {
		return err
	}
	dst.SetComplex(c)
	return nil
}

func formatString(v reflect.Value) (string, error) {
	return v.String(), nil
}

func parseString(text string, dst reflect.Value) error {
	dst.SetString(text)
	return nil
}

func formatBytes(v reflect.Value) (string, error) {
	return base64.StdEncoding.EncodeToString(v.Bytes()), nil
}

func parseBytes(text string, dst reflect.Value) error {
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		b = nil
	}
	dst.SetBytes(b)
	return nil
}
