package asyncq

import (
	"context"

	"go.llib.dev/asyncquery/pkg/lookup"
)

// ToLookup groups the elements of the query by key.
//
// The arguments are validated before the context is checked,
// so a nil argument is reported even with a cancelled context.
func ToLookup[T any, K comparable](ctx context.Context, src Queryable[T], keySelector func(T) K, opts ...lookup.Option[K]) (*lookup.Lookup[K, T], error) {
	if err := begin(ctx, src, selectorArg{name: "keySelector", isNil: keySelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, 1, syncFunc(keySelector), identity[T], opts)
}

// ToLookupWithElement groups the projected elements of the query by key.
func ToLookupWithElement[T any, K comparable, E any](ctx context.Context, src Queryable[T], keySelector func(T) K, elementSelector func(T) E, opts ...lookup.Option[K]) (*lookup.Lookup[K, E], error) {
	if err := begin(ctx, src,
		selectorArg{name: "keySelector", isNil: keySelector == nil},
		selectorArg{name: "elementSelector", isNil: elementSelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, 1, syncFunc(keySelector), syncFunc(elementSelector), opts)
}

// ToLookupAwait is ToLookup with a fallible key selector.
// The selector may run concurrently, up to the source's configured Concurrency.
func ToLookupAwait[T any, K comparable](ctx context.Context, src Queryable[T], keySelector func(T) (K, error), opts ...lookup.Option[K]) (*lookup.Lookup[K, T], error) {
	if err := begin(ctx, src, selectorArg{name: "keySelector", isNil: keySelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, ConfigOf(src).Concurrency, awaitFunc(keySelector), identity[T], opts)
}

func ToLookupAwaitWithElement[T any, K comparable, E any](ctx context.Context, src Queryable[T], keySelector func(T) (K, error), elementSelector func(T) (E, error), opts ...lookup.Option[K]) (*lookup.Lookup[K, E], error) {
	if err := begin(ctx, src,
		selectorArg{name: "keySelector", isNil: keySelector == nil},
		selectorArg{name: "elementSelector", isNil: elementSelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, ConfigOf(src).Concurrency, awaitFunc(keySelector), awaitFunc(elementSelector), opts)
}

// ToLookupAwaitWithCancellation is ToLookupAwait with selectors that receive the query's context.
func ToLookupAwaitWithCancellation[T any, K comparable](ctx context.Context, src Queryable[T], keySelector func(context.Context, T) (K, error), opts ...lookup.Option[K]) (*lookup.Lookup[K, T], error) {
	if err := begin(ctx, src, selectorArg{name: "keySelector", isNil: keySelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, ConfigOf(src).Concurrency, keySelector, identity[T], opts)
}

func ToLookupAwaitWithCancellationWithElement[T any, K comparable, E any](ctx context.Context, src Queryable[T], keySelector func(context.Context, T) (K, error), elementSelector func(context.Context, T) (E, error), opts ...lookup.Option[K]) (*lookup.Lookup[K, E], error) {
	if err := begin(ctx, src,
		selectorArg{name: "keySelector", isNil: keySelector == nil},
		selectorArg{name: "elementSelector", isNil: elementSelector == nil}); err != nil {
		return nil, err
	}
	return toLookup(ctx, src, ConfigOf(src).Concurrency, keySelector, elementSelector, opts)
}

func identity[T any](_ context.Context, v T) (T, error) { return v, nil }

type entry[K, E any] struct {
	key     K
	element E
}

func toLookup[T any, K comparable, E any](
	ctx context.Context,
	src Queryable[T],
	concurrency int,
	keySelector func(context.Context, T) (K, error),
	elementSelector func(context.Context, T) (E, error),
	opts []lookup.Option[K],
) (*lookup.Lookup[K, E], error) {
	entries := awaitEach(ctx, iterate(ctx, src), concurrency, func(ctx context.Context, v T) (entry[K, E], error) {
		k, err := keySelector(ctx, v)
		if err != nil {
			return entry[K, E]{}, err
		}
		e, err := elementSelector(ctx, v)
		if err != nil {
			return entry[K, E]{}, err
		}
		return entry[K, E]{key: k, element: e}, nil
	})
	b := lookup.NewBuilder[K, E](opts...)
	for e, err := range entries {
		if err != nil {
			return nil, err
		}
		b.Add(e.key, e.element)
	}
	return b.Build(), nil
}
