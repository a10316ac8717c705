package doc

// NodeKey is an opaque identifier, unique within an editor instance,
// assigned at creation from a monotonically increasing counter. Keys
// are never reused for the lifetime of the owning editor (invariant 9),
// even once the node they named has been garbage collected.
type NodeKey uint64

// RootKey is the sentinel key identifying the singleton Root node. It is
// always key 0; KeyAllocator.Next never returns it.
const RootKey NodeKey = 0

// KeyAllocator hands out fresh NodeKeys from a monotonically increasing
// counter. An Editor owns exactly one KeyAllocator for its lifetime and
// threads it explicitly into every transaction, rather than relying on
// package-level or thread-local state (see the design notes on the
// preferred explicit-transaction-handle form).
type KeyAllocator struct {
	next uint64
}

// NewKeyAllocator returns an allocator whose first Next() call yields
// key 1 (key 0 is reserved for Root).
func NewKeyAllocator() *KeyAllocator {
	return &KeyAllocator{next: 1}
}

// Next returns a fresh, never-before-issued NodeKey.
func (a *KeyAllocator) Next() NodeKey {
	k := NodeKey(a.next)
	a.next++
	return k
}
