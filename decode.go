package settings

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
)

// Mode selects how Import treats mappings.
type Mode int

const (
	// Merge updates only mapping keys already present in the target.
	// Keys missing from the target are dropped; keys missing from the
	// document are left untouched.
	Merge Mode = iota

	// Replace substitutes each mapping with the document's contents.
	Replace
)

func (m Mode) String() string {
	if m == Replace {
		return "replace"
	}
	return "merge"
}

// decoder applies a node tree to a live value. Sequences are always
// rebuilt; composites are updated slot by slot.
type decoder struct {
	mode     Mode
	autoInit bool
	skip     func(*SkipError)
	skipped  int
}

// decodeDocument applies doc's children to v. v must be addressable.
func (d *decoder) decodeDocument(doc *Node, v reflect.Value, p *typePlan) error {
	return d.decode(doc, v, p, "", false)
}

// decode mutates v from n. seeded is true inside freshly prepared slots
// (sequence items, mapping values), where nil pointers are allocated
// rather than reported absent because the caller owns no instance there.
func (d *decoder) decode(n *Node, v reflect.Value, p *typePlan, path string, seeded bool) error {
	switch p.shape {
	case shapePointer:
		if v.IsNil() {
			if !seeded && !d.autoInit {
				return newValueError(ErrAbsentValue, path)
			}
			v.Set(reflect.New(p.typ.Elem()))
		}
		return d.decode(n, v.Elem(), p.elem, path, seeded)

	case shapeInterface:
		if v.IsNil() {
			return newValueError(ErrAbsentValue, path)
		}
		dyn := v.Elem()
		dp, err := planFor(dyn.Type())
		if err != nil {
			return withPath(err, path)
		}
		tmp := addressable(dyn)
		if err := d.decode(n, tmp, dp, path, seeded); err != nil {
			return err
		}
		v.Set(tmp)
		return nil

	case shapeLeaf:
		if len(n.Children) > 0 {
			d.report(&SkipError{Err: ErrMalformedElement, Path: path, Element: n.Name, Cause: errNestedLeaf})
			return nil
		}
		if err := p.leaf.parse(n.Text, v); err != nil {
			d.report(&SkipError{Err: ErrMalformedElement, Path: path, Element: n.Name, Cause: err})
		}
		return nil

	case shapeSequence:
		return d.decodeSequence(n, v, p, path)

	case shapeMapping:
		return d.decodeMapping(n, v, p, path, seeded)

	case shapeComposite:
		return d.decodeComposite(n, v, p, path, seeded)
	}

	return newSchemaError(ErrUnsupportedType, p.typ, path)
}

type indexedNode struct {
	index int
	node  *Node
}

// decodeSequence discards the current contents of v and rebuilds it from
// n's i_<index> children in ascending index order.
func (d *decoder) decodeSequence(n *Node, v reflect.Value, p *typePlan, path string) error {
	items := make([]indexedNode, 0, len(n.Children))
	for _, c := range n.Children {
		i, ok := ParseItemName(c.Name)
		if !ok {
			d.report(&SkipError{Err: ErrMalformedElement, Path: path, Element: c.Name})
			continue
		}
		items = append(items, indexedNode{index: i, node: c})
	}
	slices.SortStableFunc(items, func(a, b indexedNode) int {
		return cmp.Compare(a.index, b.index)
	})

	if v.Kind() == reflect.Array {
		v.SetZero()
		for _, it := range items {
			if it.index >= v.Len() {
				d.report(&SkipError{Err: ErrMalformedElement, Path: path, Element: it.node.Name})
				continue
			}
			elemPath := indexPath(path, strconv.Itoa(it.index))
			if err := d.decode(it.node, v.Index(it.index), p.elem, elemPath, true); err != nil {
				return err
			}
		}
		return nil
	}

	if len(items) == 0 {
		v.SetZero()
		return nil
	}

	out := reflect.MakeSlice(v.Type(), 0, len(items))
	for _, it := range items {
		elem := fresh(p.elem.typ)
		elemPath := indexPath(path, strconv.Itoa(out.Len()))
		if err := d.decode(it.node, elem, p.elem, elemPath, true); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}

// decodeMapping decodes every entry into a fresh map, then either replaces
// v with it or copies across only the keys v already holds. Inside a
// freshly prepared slot there is nothing to merge with, so it replaces.
func (d *decoder) decodeMapping(n *Node, v reflect.Value, p *typePlan, path string, seeded bool) error {
	decoded := reflect.MakeMapWithSize(v.Type(), len(n.Children))
	for _, c := range n.Children {
		text, err := DecodeName(c.Name)
		if err != nil {
			d.report(&SkipError{Err: ErrMalformedName, Path: path, Element: c.Name, Cause: err})
			continue
		}
		key := fresh(p.key.typ)
		if err := p.key.leaf.parse(text, key); err != nil {
			d.report(&SkipError{Err: ErrMalformedElement, Path: path, Element: c.Name, Cause: err})
			continue
		}
		val := fresh(p.elem.typ)
		if err := d.decode(c, val, p.elem, indexPath(path, text), true); err != nil {
			return err
		}
		decoded.SetMapIndex(key, val)
	}

	if d.mode == Replace || seeded {
		v.Set(decoded)
		return nil
	}

	if v.IsNil() {
		return nil
	}
	iter := decoded.MapRange()
	for iter.Next() {
		if v.MapIndex(iter.Key()).IsValid() {
			v.SetMapIndex(iter.Key(), iter.Value())
		}
	}
	return nil
}

// decodeComposite matches children to slots by decoded name and recurses
// into each matched slot's current value. Unmatched children are skipped.
func (d *decoder) decodeComposite(n *Node, v reflect.Value, p *typePlan, path string, seeded bool) error {
	for _, c := range n.Children {
		name, err := DecodeName(c.Name)
		if err != nil {
			d.report(&SkipError{Err: ErrMalformedName, Path: path, Element: c.Name, Cause: err})
			continue
		}
		i, ok := p.byName[name]
		if !ok {
			d.report(&SkipError{Err: ErrUnknownElement, Path: path, Element: c.Name})
			continue
		}
		slot := &p.slots[i]
		field := settable(v.Field(slot.index))
		if err := d.decode(c, field, slot.plan, joinPath(path, slot.name), seeded); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) report(skip *SkipError) {
	d.skipped++
	if d.skip != nil {
		d.skip(skip)
	}
}
