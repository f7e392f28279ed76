package settings

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hasher computes document fingerprints.
type Hasher interface {
	// Hash returns a hex-encoded digest of data.
	Hash(data []byte) string
}

// blake2bHasher implements BLAKE2b-256 hashing.
type blake2bHasher struct{}

// BLAKE2bHasher returns a BLAKE2b-256 hasher. It is the default.
// The result is a hex-encoded 64-character string.
func BLAKE2bHasher() Hasher {
	return &blake2bHasher{}
}

func (h *blake2bHasher) Hash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
