// Package bson provides a BSON codec implementation.
//
// A settings document is written as its node tree, one embedded document
// per node. BSON requires a document at the top level, which the root
// node always is.
package bson

import (
	"github.com/zoobzio/settings"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements settings.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() settings.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
