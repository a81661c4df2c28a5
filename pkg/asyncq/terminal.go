package asyncq

import (
	"cmp"
	"context"

	"go.llib.dev/asyncquery/pkg/errorkit"
)

// begin validates the source and checks the context before a terminal operator starts.
func begin[T any](ctx context.Context, src Queryable[T], selectors ...selectorArg) error {
	if isNil(src) {
		return errorkit.ArgumentNil("source")
	}
	for _, s := range selectors {
		if s.isNil {
			return errorkit.ArgumentNil(s.name)
		}
	}
	return ctx.Err()
}

type selectorArg struct {
	name  string
	isNil bool
}

func ToSlice[T any](ctx context.Context, src Queryable[T]) ([]T, error) {
	if err := begin(ctx, src); err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func Count[T any](ctx context.Context, src Queryable[T]) (int, error) {
	if err := begin(ctx, src); err != nil {
		return 0, err
	}
	var n int
	for _, err := range iterate(ctx, src) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// Any reports whether the query has at least one element.
func Any[T any](ctx context.Context, src Queryable[T]) (bool, error) {
	if err := begin(ctx, src); err != nil {
		return false, err
	}
	for _, err := range iterate(ctx, src) {
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// All reports whether every element satisfies the predicate.
// An empty query satisfies any predicate.
func All[T any](ctx context.Context, src Queryable[T], predicate func(T) bool) (bool, error) {
	if err := begin(ctx, src, selectorArg{name: "predicate", isNil: predicate == nil}); err != nil {
		return false, err
	}
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return false, err
		}
		if !predicate(v) {
			return false, nil
		}
	}
	return true, nil
}

func Contains[T comparable](ctx context.Context, src Queryable[T], value T) (bool, error) {
	if err := begin(ctx, src); err != nil {
		return false, err
	}
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return false, err
		}
		if v == value {
			return true, nil
		}
	}
	return false, nil
}

// First returns the first element, or ErrNoElements when the query is empty.
func First[T any](ctx context.Context, src Queryable[T]) (T, error) {
	var zero T
	if err := begin(ctx, src); err != nil {
		return zero, err
	}
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return zero, err
		}
		return v, nil
	}
	return zero, ErrNoElements
}

// Aggregate folds the elements into an accumulator, starting from seed.
func Aggregate[T, A any](ctx context.Context, src Queryable[T], seed A, fn func(A, T) A) (A, error) {
	if err := begin(ctx, src, selectorArg{name: "func", isNil: fn == nil}); err != nil {
		return seed, err
	}
	acc := seed
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return seed, err
		}
		acc = fn(acc, v)
	}
	return acc, nil
}

func Min[T cmp.Ordered](ctx context.Context, src Queryable[T]) (T, error) {
	return extreme(ctx, src, func(a, b T) bool { return cmp.Less(b, a) })
}

func Max[T cmp.Ordered](ctx context.Context, src Queryable[T]) (T, error) {
	return extreme(ctx, src, func(a, b T) bool { return cmp.Less(a, b) })
}

// extreme keeps replacing the current value while replace says so.
func extreme[T any](ctx context.Context, src Queryable[T], replace func(current, next T) bool) (T, error) {
	var (
		zero  T
		out   T
		found bool
	)
	if err := begin(ctx, src); err != nil {
		return zero, err
	}
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return zero, err
		}
		if !found || replace(out, v) {
			out, found = v, true
		}
	}
	if !found {
		return zero, ErrNoElements
	}
	return out, nil
}

// ToMap builds a map with one element per key.
// A repeated key fails with ErrDuplicateKey.
func ToMap[T any, K comparable, V any](ctx context.Context, src Queryable[T], keySelector func(T) K, elementSelector func(T) V) (map[K]V, error) {
	if err := begin(ctx, src,
		selectorArg{name: "keySelector", isNil: keySelector == nil},
		selectorArg{name: "elementSelector", isNil: elementSelector == nil}); err != nil {
		return nil, err
	}
	out := make(map[K]V)
	for v, err := range iterate(ctx, src) {
		if err != nil {
			return nil, err
		}
		k := keySelector(v)
		if _, ok := out[k]; ok {
			return nil, ErrDuplicateKey.F("%v", k)
		}
		out[k] = elementSelector(v)
	}
	return out, nil
}
