package settings

// RootName is the default name of a settings document's root element.
const RootName = "Settings"

// Node is one element of a settings document.
//
// A node carries either Text (leaf values) or Children (sequences,
// mappings, composites), never both. Names are already encoded with
// EncodeName. Codecs render the tree; the struct tags serve formats that
// marshal Node directly.
type Node struct {
	Name     string  `json:"name" msgpack:"name" bson:"name"`
	Text     string  `json:"text,omitempty" msgpack:"text,omitempty" bson:"text,omitempty"`
	Children []*Node `json:"children,omitempty" msgpack:"children,omitempty" bson:"children,omitempty"`
}

// Append adds and returns a child named name.
func (n *Node) Append(name string) *Node {
	child := &Node{Name: name}
	n.Children = append(n.Children, child)
	return child
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
