package settings

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// visitKey identifies a reference currently on the encode stack.
type visitKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// encoder renders a value graph into a node tree. The graph is read only.
type encoder struct {
	visiting map[visitKey]struct{}
}

// encodeDocument renders v under a root element named root.
// v must be addressable.
func encodeDocument(root string, v reflect.Value, p *typePlan) (*Node, error) {
	e := &encoder{visiting: make(map[visitKey]struct{})}
	doc := &Node{Name: root}
	if err := e.encode(doc, v, p, ""); err != nil {
		return nil, err
	}
	return doc, nil
}

func (e *encoder) encode(n *Node, v reflect.Value, p *typePlan, path string) error {
	switch p.shape {
	case shapePointer:
		if v.IsNil() {
			return newValueError(ErrAbsentValue, path)
		}
		leave, err := e.enter(v, path)
		if err != nil {
			return err
		}
		defer leave()
		return e.encode(n, v.Elem(), p.elem, path)

	case shapeInterface:
		if v.IsNil() {
			return newValueError(ErrAbsentValue, path)
		}
		dyn := v.Elem()
		dp, err := planFor(dyn.Type())
		if err != nil {
			return withPath(err, path)
		}
		return e.encode(n, addressable(dyn), dp, path)

	case shapeLeaf:
		text, err := p.leaf.format(addressable(v))
		if err != nil {
			return newValueError(err, path)
		}
		n.Text = text
		return nil

	case shapeSequence:
		if v.Kind() == reflect.Slice && v.Len() > 0 {
			leave, err := e.enter(v, path)
			if err != nil {
				return err
			}
			defer leave()
		}
		for i := 0; i < v.Len(); i++ {
			child := n.Append(ItemName(i))
			if err := e.encode(child, addressable(v.Index(i)), p.elem, indexPath(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil

	case shapeMapping:
		return e.encodeMapping(n, v, p, path)

	case shapeComposite:
		for _, slot := range p.slots {
			child := n.Append(slot.element)
			if err := e.encode(child, settable(v.Field(slot.index)), slot.plan, joinPath(path, slot.name)); err != nil {
				return err
			}
		}
		return nil
	}

	return newSchemaError(ErrUnsupportedType, p.typ, path)
}

type mapEntry struct {
	name string
	key  string
	val  reflect.Value
}

// encodeMapping writes entries sorted by element name so output is stable.
func (e *encoder) encodeMapping(n *Node, v reflect.Value, p *typePlan, path string) error {
	if v.IsNil() || v.Len() == 0 {
		return nil
	}
	leave, err := e.enter(v, path)
	if err != nil {
		return err
	}
	defer leave()

	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := p.key.leaf.format(addressable(iter.Key()))
		if err != nil {
			return newValueError(err, path)
		}
		entries = append(entries, mapEntry{
			name: EncodeName(key),
			key:  key,
			val:  addressable(iter.Value()),
		})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int {
		return strings.Compare(a.name, b.name)
	})

	for _, entry := range entries {
		child := n.Append(entry.name)
		if err := e.encode(child, entry.val, p.elem, indexPath(path, entry.key)); err != nil {
			return err
		}
	}
	return nil
}

// enter marks a pointer, map or slice as being encoded and returns its
// release. Slices are keyed by length too, since a shorter view of the same
// backing array is a different value.
func (e *encoder) enter(v reflect.Value, path string) (func(), error) {
	k := visitKey{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		k.len = v.Len()
	}
	if _, ok := e.visiting[k]; ok {
		return nil, newValueError(ErrCyclicGraph, path)
	}
	e.visiting[k] = struct{}{}
	return func() { delete(e.visiting, k) }, nil
}

func indexPath(parent, index string) string {
	return parent + "[" + index + "]"
}

// withPath attaches a slot path to schema errors raised for dynamic values.
func withPath(err error, path string) error {
	if se, ok := err.(*SchemaError); ok && se.Path == "" {
		return &SchemaError{Err: se.Err, Type: se.Type, Path: path}
	}
	return err
}
