// Package lookup implements an immutable one-to-many dictionary,
// where each key maps to the sequence of elements that share it.
package lookup

import (
	"iter"

	"go.llib.dev/asyncquery/pkg/option"
)

type Config[K any] struct {
	Comparer Comparer[K]
}

func (c Config[K]) Configure(t *Config[K]) {
	if c.Comparer != nil {
		t.Comparer = c.Comparer
	}
}

type Option[K any] option.Option[Config[K]]

// WithComparer sets the key comparer of the lookup.
// A nil comparer keeps the default.
func WithComparer[K any](c Comparer[K]) Option[K] {
	return Config[K]{Comparer: c}
}

// Lookup is a read-only multimap.
// Keys keep the order in which they were first seen,
// and values keep the order in which they were added.
//
// A Lookup is safe for concurrent reads.
type Lookup[K, V any] struct {
	comparer Comparer[K]
	index    map[uint64][]int
	groups   []*Grouping[K, V]
}

// Count returns the number of distinct keys.
func (l *Lookup[K, V]) Count() int {
	if l == nil {
		return 0
	}
	return len(l.groups)
}

func (l *Lookup[K, V]) Contains(key K) bool {
	_, ok := l.find(key)
	return ok
}

// Get returns the values of a key.
// An absent key yields an empty sequence.
func (l *Lookup[K, V]) Get(key K) iter.Seq[V] {
	g, ok := l.find(key)
	if !ok {
		return func(yield func(V) bool) {}
	}
	return g.All()
}

// Keys iterates the distinct keys in first-seen order.
func (l *Lookup[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if l == nil {
			return
		}
		for _, g := range l.groups {
			if !yield(g.key) {
				return
			}
		}
	}
}

func (l *Lookup[K, V]) Groupings() iter.Seq[Grouping[K, V]] {
	return func(yield func(Grouping[K, V]) bool) {
		if l == nil {
			return
		}
		for _, g := range l.groups {
			if !yield(*g) {
				return
			}
		}
	}
}

// All iterates the key and values pairs in key order.
func (l *Lookup[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		if l == nil {
			return
		}
		for _, g := range l.groups {
			if !yield(g.key, g.Values()) {
				return
			}
		}
	}
}

// Comparer returns the key comparer the lookup was built with.
func (l *Lookup[K, V]) Comparer() Comparer[K] {
	if l == nil {
		return nil
	}
	return l.comparer
}

func (l *Lookup[K, V]) find(key K) (*Grouping[K, V], bool) {
	if l == nil || l.comparer == nil {
		return nil, false
	}
	for _, i := range l.index[l.comparer.Hash(key)] {
		if l.comparer.Equal(l.groups[i].key, key) {
			return l.groups[i], true
		}
	}
	return nil, false
}

// Grouping is a key with the values that share it.
type Grouping[K, V any] struct {
	key    K
	values []V
}

func (g Grouping[K, V]) Key() K { return g.key }

func (g Grouping[K, V]) Len() int { return len(g.values) }

// Values returns a copy of the grouped values.
func (g Grouping[K, V]) Values() []V {
	out := make([]V, len(g.values))
	copy(out, g.values)
	return out
}

func (g Grouping[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range g.values {
			if !yield(v) {
				return
			}
		}
	}
}
