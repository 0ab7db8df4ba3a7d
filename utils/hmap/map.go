package hmap

import "github.com/sjas/adlint-sub000/utils"

// A simple implementation of a mutable hash map.
// Useful when the keys are not comparable with ==, and the overhead of
// immutable maps is not warranted (e.g. memo tables).

// Uses linked lists to resolve hash collisions.

type node[K, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

type Map[K, V any] struct {
	hasher utils.Hasher[K]
	mp     map[uint32]*node[K, V]
	size   int
}

// Order of V and K are swapped since K can be inferred by the argument.
func NewMap[V, K any](hasher utils.Hasher[K]) *Map[K, V] {
	return &Map[K, V]{
		hasher: hasher,
		mp:     make(map[uint32]*node[K, V]),
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	h := m.hasher.Hash(key)
	snode, found := m.mp[h]
	if !found {
		m.mp[h] = &node[K, V]{key, value, nil}
		m.size++
		return
	}

	for {
		if m.hasher.Equal(key, snode.key) {
			snode.value = value
			return
		}

		if snode.next == nil {
			// Hash collision :(
			snode.next = &node[K, V]{key, value, nil}
			m.size++
			return
		}
		snode = snode.next
	}
}

func (m *Map[K, V]) GetOk(key K) (res V, ok bool) {
	for node := m.mp[m.hasher.Hash(key)]; node != nil; node = node.next {
		if m.hasher.Equal(key, node.key) {
			return node.value, true
		}
	}

	return
}

// Len returns the number of keys in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Clear removes every entry from the map.
func (m *Map[K, V]) Clear() {
	m.mp = make(map[uint32]*node[K, V])
	m.size = 0
}
