package asyncq

import (
	"context"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/lookup"
)

// Where keeps the elements the predicate accepts.
func Where[T any](src Queryable[T], predicate func(T) bool) Queryable[T] {
	if predicate == nil {
		return filter[T](src, nil)
	}
	return filter(src, syncFunc(predicate))
}

func WhereAwait[T any](src Queryable[T], predicate func(T) (bool, error)) Queryable[T] {
	if predicate == nil {
		return filter[T](src, nil)
	}
	return filter(src, awaitFunc(predicate))
}

func WhereAwaitWithCancellation[T any](src Queryable[T], predicate func(context.Context, T) (bool, error)) Queryable[T] {
	return filter(src, predicate)
}

type filtered[T any] struct {
	value T
	ok    bool
}

func filter[T any](src Queryable[T], predicate func(context.Context, T) (bool, error)) Queryable[T] {
	if isNil(src) {
		return fail[T](errorkit.ArgumentNil("source"))
	}
	if predicate == nil {
		return fail[T](errorkit.ArgumentNil("predicate"))
	}
	concurrency := ConfigOf(src).Concurrency
	return derive(src, func(ctx context.Context) iterkit.ErrSeq[T] {
		results := awaitEach(ctx, src.Iterate(ctx), concurrency, func(ctx context.Context, v T) (filtered[T], error) {
			ok, err := predicate(ctx, v)
			return filtered[T]{value: v, ok: ok}, err
		})
		return func(yield func(T, error) bool) {
			for r, err := range results {
				if err != nil {
					var zero T
					if !yield(zero, err) {
						return
					}
					continue
				}
				if r.ok && !yield(r.value, nil) {
					return
				}
			}
		}
	})
}

// Select projects each element with the selector.
func Select[T, R any](src Queryable[T], selector func(T) R) Queryable[R] {
	if selector == nil {
		return project[T, R](src, nil)
	}
	return project(src, syncFunc(selector))
}

func SelectAwait[T, R any](src Queryable[T], selector func(T) (R, error)) Queryable[R] {
	if selector == nil {
		return project[T, R](src, nil)
	}
	return project(src, awaitFunc(selector))
}

func SelectAwaitWithCancellation[T, R any](src Queryable[T], selector func(context.Context, T) (R, error)) Queryable[R] {
	return project(src, selector)
}

func project[T, R any](src Queryable[T], selector func(context.Context, T) (R, error)) Queryable[R] {
	if isNil(src) {
		return fail[R](errorkit.ArgumentNil("source"))
	}
	if selector == nil {
		return fail[R](errorkit.ArgumentNil("selector"))
	}
	concurrency := ConfigOf(src).Concurrency
	return derive(src, func(ctx context.Context) iterkit.ErrSeq[R] {
		return awaitEach(ctx, src.Iterate(ctx), concurrency, selector)
	})
}

// Take returns the first n elements.
func Take[T any](src Queryable[T], n int) Queryable[T] {
	if isNil(src) {
		return fail[T](errorkit.ArgumentNil("source"))
	}
	return derive(src, func(ctx context.Context) iterkit.ErrSeq[T] {
		return iterkit.Head(src.Iterate(ctx), n)
	})
}

// Skip bypasses the first n elements.
func Skip[T any](src Queryable[T], n int) Queryable[T] {
	if isNil(src) {
		return fail[T](errorkit.ArgumentNil("source"))
	}
	return derive(src, func(ctx context.Context) iterkit.ErrSeq[T] {
		return iterkit.Offset(src.Iterate(ctx), n)
	})
}

// GroupBy groups the elements by key.
// The source is consumed entirely before the first grouping is yielded.
func GroupBy[T any, K comparable](src Queryable[T], keySelector func(T) K, opts ...lookup.Option[K]) Queryable[lookup.Grouping[K, T]] {
	if isNil(src) {
		return fail[lookup.Grouping[K, T]](errorkit.ArgumentNil("source"))
	}
	if keySelector == nil {
		return fail[lookup.Grouping[K, T]](errorkit.ArgumentNil("keySelector"))
	}
	return derive(src, func(ctx context.Context) iterkit.ErrSeq[lookup.Grouping[K, T]] {
		return func(yield func(lookup.Grouping[K, T], error) bool) {
			l, err := ToLookup(ctx, src, keySelector, opts...)
			if err != nil {
				var zero lookup.Grouping[K, T]
				yield(zero, err)
				return
			}
			for g := range l.Groupings() {
				if !yield(g, nil) {
					return
				}
			}
		}
	})
}
