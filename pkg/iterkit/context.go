package iterkit

import (
	"context"
	"sync"
)

// WithContext stops the iteration once the context is done,
// and yields the context error as the last element.
func WithContext[T any](ctx context.Context, i ErrSeq[T]) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		if err := ctx.Err(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		for v, err := range i {
			if ctxErr := ctx.Err(); ctxErr != nil {
				var zero T
				yield(zero, ctxErr)
				return
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

type element[T any] struct {
	Value T
	Err   error
}

// Background iterates the source on a separate goroutine
// and hands the elements over to the consumer through a channel with the given buffer size.
//
// The goroutine is stopped and waited for when the consumer breaks,
// when the source is exhausted, or when the context is done.
// The source is never iterated on the consumer's goroutine.
func Background[T any](ctx context.Context, src ErrSeq[T], buffer int) ErrSeq[T] {
	if buffer < 0 {
		buffer = 0
	}
	return func(yield func(T, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		var (
			wg sync.WaitGroup
			ch = make(chan element[T], buffer)
		)
		defer wg.Wait()
		defer cancel()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer close(ch)
		feeding:
			for v, err := range src {
				select {
				case ch <- element[T]{Value: v, Err: err}:
					continue feeding
				case <-ctx.Done():
					break feeding
				}
			}
		}()

	pushing:
		for {
			select {
			case e, ok := <-ch:
				if !ok {
					if err := ctx.Err(); err != nil {
						var zero T
						yield(zero, err)
					}
					break pushing
				}
				if !yield(e.Value, e.Err) {
					break pushing
				}
			case <-ctx.Done():
				var zero T
				yield(zero, ctx.Err())
				break pushing
			}
		}
	}
}
