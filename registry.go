package settings

import (
	"reflect"
)

// registryKey combines type and codec for cache lookup.
type registryKey struct {
	typ         reflect.Type
	contentType string
}

// registry holds one engine per type and content type.
var registry = newSyncCache[registryKey, any]()

// Use returns a cached engine or builds a new one.
// The engine is cached by type and codec content type; opts only apply
// when the engine is first built.
func Use[T any](codec Codec, opts ...Option) (*Engine[T], error) {
	key := registryKey{typ: reflect.TypeFor[T](), contentType: codec.ContentType()}

	cached, err := registry.load(key, func(*cacheTx[registryKey, any]) (any, error) {
		return NewEngine[T](codec, opts...)
	})
	if err != nil {
		return nil, err
	}
	return cached.(*Engine[T]), nil
}

// Reset clears the engine registry and the type plan cache.
// This is primarily useful for test isolation.
func Reset() {
	registry.reset()
	resetPlans()
}
