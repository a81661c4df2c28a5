package lookup

import "slices"

// Equal reports whether both lookups hold the same keys, under a's comparer,
// with the same values in the same order for each key.
// The order of the keys is not compared, see KeysInOrder for that.
func Equal[K any, V comparable](a, b *Lookup[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares the values with eq.
func EqualFunc[K, V any](a, b *Lookup[K, V], eq func(x, y V) bool) bool {
	if a.Count() != b.Count() {
		return false
	}
	if a.Count() == 0 {
		return true
	}
	index := make(map[uint64][]int, len(b.groups))
	for i, gb := range b.groups {
		h := a.comparer.Hash(gb.key)
		index[h] = append(index[h], i)
	}
	for _, ga := range a.groups {
		var found bool
		for _, i := range index[a.comparer.Hash(ga.key)] {
			gb := b.groups[i]
			if !a.comparer.Equal(ga.key, gb.key) {
				continue
			}
			if !slices.EqualFunc(ga.values, gb.values, eq) {
				return false
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// KeysInOrder reports whether both lookups list equal keys in the same order.
func KeysInOrder[K, V any](a, b *Lookup[K, V]) bool {
	if a.Count() != b.Count() {
		return false
	}
	for i := 0; i < a.Count(); i++ {
		if !a.comparer.Equal(a.groups[i].key, b.groups[i].key) {
			return false
		}
	}
	return true
}
