// Package json provides a JSON codec implementation.
//
// A settings document is written as its node tree:
// {"name": ..., "text": ..., "children": [...]}.
package json

import (
	"encoding/json"

	"github.com/zoobzio/settings"
)

// jsonCodec implements settings.Codec for JSON.
type jsonCodec struct {
	indent string
}

// New returns a JSON codec.
func New() settings.Codec {
	return &jsonCodec{}
}

// NewIndent returns a JSON codec that indents nested objects.
func NewIndent(indent string) settings.Codec {
	return &jsonCodec{indent: indent}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return json.MarshalIndent(v, "", c.indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
