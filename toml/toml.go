// Package toml provides a TOML codec implementation.
//
// A settings document is written as one top-level table named after the
// root. Leaves become strings and every other node becomes a table keyed
// by child name. Hand-written values of other TOML types are read back
// through their string form; arrays are numbered i_0, i_1, ...
package toml

import (
	"fmt"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
	"github.com/zoobzio/settings"
)

// tomlCodec implements settings.Codec for TOML.
type tomlCodec struct{}

// New returns a TOML codec.
func New() settings.Codec {
	return &tomlCodec{}
}

// ContentType returns the MIME type for TOML.
func (c *tomlCodec) ContentType() string {
	return "application/toml"
}

// Marshal encodes v as TOML.
func (c *tomlCodec) Marshal(v any) ([]byte, error) {
	if n, ok := v.(*settings.Node); ok {
		v = map[string]any{n.Name: tree(n)}
	}
	return toml.Marshal(v)
}

// Unmarshal decodes TOML data into v.
func (c *tomlCodec) Unmarshal(data []byte, v any) error {
	n, ok := v.(*settings.Node)
	if !ok {
		return toml.Unmarshal(data, v)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("toml: settings document must have one root table, found %d keys", len(raw))
	}
	for name, value := range raw {
		*n = settings.Node{Name: name}
		return fill(n, value)
	}
	return nil
}

func tree(n *settings.Node) any {
	if len(n.Children) == 0 {
		return n.Text
	}
	m := make(map[string]any, len(n.Children))
	for _, c := range n.Children {
		m[c.Name] = tree(c)
	}
	return m
}

// fill populates n from a decoded TOML value. Table keys are visited in
// sorted order since TOML tables carry none.
func fill(n *settings.Node, value any) error {
	switch t := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := fill(n.Append(k), t[k]); err != nil {
				return err
			}
		}
	case []map[string]any:
		for i, item := range t {
			if err := fill(n.Append(settings.ItemName(i)), item); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range t {
			if err := fill(n.Append(settings.ItemName(i)), item); err != nil {
				return err
			}
		}
	case time.Time:
		n.Text = t.Format(time.RFC3339Nano)
	default:
		text, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Errorf("toml: %s: %w", n.Name, err)
		}
		n.Text = text
	}
	return nil
}
