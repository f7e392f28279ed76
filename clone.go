package settings

// Cloner allows types to provide deep copy logic.
//
// When the target type of an Engine implements Cloner, Import decodes into
// a clone and copies it back over the target only if the whole document
// applied without a hard error. Without it, a failed Import may leave the
// target partially updated.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices, or maps,
// ensure these are also copied to achieve true isolation.
//
// For simple value types with no pointers, slices, or maps, Clone can simply return
// the receiver value:
//
//	func (s Audio) Clone() Audio { return s }
//
// For types with reference fields, ensure deep copying:
//
//	func (s Keymap) Clone() Keymap {
//	    binds := make(map[string]Key, len(s.Binds))
//	    maps.Copy(binds, s.Binds)
//	    return Keymap{Binds: binds}
//	}
type Cloner[T any] interface {
	Clone() T
}
