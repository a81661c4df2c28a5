package lookup

import (
	"iter"

	"go.llib.dev/asyncquery/pkg/option"
)

// Builder collects key and value pairs into a Lookup.
// A Builder is not safe for concurrent use.
type Builder[K, V any] struct {
	lookup *Lookup[K, V]
}

func NewBuilder[K comparable, V any](opts ...Option[K]) *Builder[K, V] {
	c := option.Use[Config[K]](opts)
	if c.Comparer == nil {
		c.Comparer = Default[K]()
	}
	return &Builder[K, V]{lookup: &Lookup[K, V]{
		comparer: c.Comparer,
		index:    make(map[uint64][]int),
	}}
}

// Add appends the value to the key's grouping, creating the grouping on first sight of the key.
func (b *Builder[K, V]) Add(key K, value V) {
	if g, ok := b.lookup.find(key); ok {
		g.values = append(g.values, value)
		return
	}
	h := b.lookup.comparer.Hash(key)
	b.lookup.index[h] = append(b.lookup.index[h], len(b.lookup.groups))
	b.lookup.groups = append(b.lookup.groups, &Grouping[K, V]{key: key, values: []V{value}})
}

// Build returns the Lookup.
// The Builder must not be used afterwards.
func (b *Builder[K, V]) Build() *Lookup[K, V] {
	l := b.lookup
	b.lookup = nil
	return l
}

// Of groups the elements of xs by the key selector.
func Of[T any, K comparable](xs []T, key func(T) K, opts ...Option[K]) *Lookup[K, T] {
	return OfElements(xs, key, func(v T) T { return v }, opts...)
}

// OfElements groups the projected elements of xs by the key selector.
func OfElements[T any, K comparable, E any](xs []T, key func(T) K, elem func(T) E, opts ...Option[K]) *Lookup[K, E] {
	b := NewBuilder[K, E](opts...)
	for _, x := range xs {
		b.Add(key(x), elem(x))
	}
	return b.Build()
}

// FromSeq groups the values of the sequence by the key selector.
func FromSeq[T any, K comparable](seq iter.Seq[T], key func(T) K, opts ...Option[K]) *Lookup[K, T] {
	b := NewBuilder[K, T](opts...)
	for v := range seq {
		b.Add(key(v), v)
	}
	return b.Build()
}
