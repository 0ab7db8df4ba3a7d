package utils

import "hash/fnv"

type (
	// Hasher computes hashes of, and compares, keys of type K.
	// It has the same method set as immutable.Hasher.
	Hasher[K any] interface {
		Hash(key K) uint32
		Equal(a, b K) bool
	}

	// Hashable is implemented by all hashable types.
	Hashable interface {
		Hash() uint32
	}
	// HashableEq is implemented by all hashable types that can be compared for equality.
	HashableEq[T any] interface {
		Hashable
		Equal(T) bool
	}
)

// HashString computes the 32-bit FNV-1a hash of a string.
func HashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// HashBool maps booleans to distinct small hash values.
func HashBool(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// HashCombine uses the C++ boost algorithm for combining multiple hash values.
func HashCombine(hs ...uint32) (seed uint32) {
	for _, v := range hs {
		seed = v + 0x9e3779b9 + (seed << 6) + (seed >> 2)
	}

	return
}
