// Package xml provides an XML codec implementation.
package xml

import (
	"encoding/xml"
	"strings"

	"github.com/zoobzio/settings"
)

// xmlCodec implements settings.Codec for XML.
type xmlCodec struct {
	prefix string
	indent string
}

// New returns an XML codec.
func New() settings.Codec {
	return &xmlCodec{}
}

// NewIndent returns an XML codec that writes one element per line.
func NewIndent(prefix, indent string) settings.Codec {
	return &xmlCodec{prefix: prefix, indent: indent}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML. A *settings.Node is written as nested
// elements with leaf text.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	if n, ok := v.(*settings.Node); ok {
		v = (*element)(n)
	}
	if c.prefix != "" || c.indent != "" {
		return xml.MarshalIndent(v, c.prefix, c.indent)
	}
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	if n, ok := v.(*settings.Node); ok {
		v = (*element)(n)
	}
	return xml.Unmarshal(data, v)
}

// element renders a settings.Node as an XML element.
type element settings.Node

// MarshalXML writes the element under its own name; the start element
// chosen by the encoder is ignored.
func (e *element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if len(e.Children) == 0 {
		if e.Text != "" {
			if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
				return err
			}
		}
	} else {
		for _, c := range e.Children {
			if err := (*element)(c).MarshalXML(enc, xml.StartElement{}); err != nil {
				return err
			}
		}
	}

	return enc.EncodeToken(start.End())
}

// UnmarshalXML reads one element. Character data is kept only for
// elements without children, so indentation between elements is dropped.
func (e *element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name.Local

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child := &settings.Node{}
			if err := (*element)(child).UnmarshalXML(dec, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(e.Children) == 0 {
				e.Text = text.String()
			}
			return nil
		}
	}
}
