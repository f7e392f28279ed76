// Package yaml provides a YAML codec implementation.
//
// A settings document is written as a mapping with the root name as its
// only key. Leaves become string scalars and every other node becomes a
// mapping from child name to child. Hand-written sequences are accepted on
// read and numbered i_0, i_1, ...
package yaml

import (
	"fmt"

	"github.com/zoobzio/settings"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements settings.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() settings.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	if n, ok := v.(*settings.Node); ok {
		v = (*document)(n)
	}
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	if n, ok := v.(*settings.Node); ok {
		v = (*document)(n)
	}
	return yaml.Unmarshal(data, v)
}

// document renders a settings.Node as a single-key YAML mapping.
type document settings.Node

// MarshalYAML implements yaml.Marshaler.
func (d *document) MarshalYAML() (any, error) {
	n := (*settings.Node)(d)
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{keyNode(n.Name), valueNode(n)},
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *document) UnmarshalYAML(value *yaml.Node) error {
	value = resolve(value)
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("yaml: settings document must be a mapping with one root key, line %d", value.Line)
	}
	n := (*settings.Node)(d)
	*n = settings.Node{Name: value.Content[0].Value}
	return fill(n, value.Content[1])
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

func valueNode(n *settings.Node) *yaml.Node {
	if len(n.Children) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Text}
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(n.Children))}
	for _, c := range n.Children {
		m.Content = append(m.Content, keyNode(c.Name), valueNode(c))
	}
	return m
}

// fill populates n from value.
func fill(n *settings.Node, value *yaml.Node) error {
	value = resolve(value)
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() != "!!null" {
			n.Text = value.Value
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			child := n.Append(resolve(value.Content[i]).Value)
			if err := fill(child, value.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range value.Content {
			child := n.Append(settings.ItemName(i))
			if err := fill(child, item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("yaml: unexpected node kind %d at line %d", value.Kind, value.Line)
	}
	return nil
}

// resolve follows aliases and unwraps document nodes.
func resolve(value *yaml.Node) *yaml.Node {
	for {
		switch {
		case value.Kind == yaml.AliasNode && value.Alias != nil:
			value = value.Alias
		case value.Kind == yaml.DocumentNode && len(value.Content) == 1:
			value = value.Content[0]
		default:
			return value
		}
	}
}
