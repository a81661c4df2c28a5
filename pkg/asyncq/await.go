package asyncq

import (
	"context"

	"golang.org/x/sync/errgroup"

	"go.llib.dev/asyncquery/pkg/iterkit"
)

func awaitFunc[T, R any](fn func(T) (R, error)) func(context.Context, T) (R, error) {
	return func(_ context.Context, v T) (R, error) { return fn(v) }
}

func syncFunc[T, R any](fn func(T) R) func(context.Context, T) (R, error) {
	return func(_ context.Context, v T) (R, error) { return fn(v), nil }
}

// awaitEach applies fn to every value of seq, keeping the order of the values.
//
// With a concurrency above one, the values are taken in batches,
// and fn runs on separate goroutines for the values of a batch.
// The first failing call cancels the context of the others in the batch.
// Errors of the source are yielded after the values that preceded them.
func awaitEach[T, R any](ctx context.Context, seq iterkit.ErrSeq[T], concurrency int, fn func(context.Context, T) (R, error)) iterkit.ErrSeq[R] {
	if concurrency <= 1 {
		return iterkit.Map(seq, func(v T) (R, error) { return fn(ctx, v) })
	}
	return func(yield func(R, error) bool) {
		var zero R
		batch := make([]T, 0, concurrency)
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			defer func() { batch = batch[:0] }()
			out := make([]R, len(batch))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i, v := range batch {
				g.Go(func() error {
					r, err := fn(gctx, v)
					if err != nil {
						return err
					}
					out[i] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				yield(zero, err)
				return false
			}
			for _, r := range out {
				if !yield(r, nil) {
					return false
				}
			}
			return true
		}
		for v, err := range seq {
			if err != nil {
				if !flush() || !yield(zero, err) {
					return
				}
				continue
			}
			batch = append(batch, v)
			if len(batch) == concurrency && !flush() {
				return
			}
		}
		flush()
	}
}
