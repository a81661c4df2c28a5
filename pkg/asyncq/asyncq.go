// Package asyncq implements the standard query operators over asynchronous queryables.
//
// A Queryable produces its elements lazily for a given context.
// Intermediate operators (Where, Select, GroupBy...) compose queryables,
// while terminal operators (ToSlice, Sum, ToLookup...) block until the result is computed,
// or until the context is cancelled.
//
// Operators come in three calling conventions:
//
//	Select(src, func(T) R)
//	SelectAwait(src, func(T) (R, error))
//	SelectAwaitWithCancellation(src, func(context.Context, T) (R, error))
//
// The Await variants may run their selectors concurrently, see Concurrency.
package asyncq

import (
	"context"
	"iter"
	"reflect"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/option"
)

type Queryable[T any] interface {
	// Iterate returns the elements of the query.
	// The iteration stops with the context's error when the context is done.
	Iterate(ctx context.Context) iterkit.ErrSeq[T]
}

// Configurable is implemented by queryables that carry query configuration.
type Configurable interface {
	QueryConfig() Config
}

type Config struct {
	// Concurrency is the maximum number of Await selectors running at the same time.
	Concurrency int
}

func (c *Config) Init() {
	c.Concurrency = 1
}

func (c Config) Configure(t *Config) {
	if 0 < c.Concurrency {
		t.Concurrency = c.Concurrency
	}
}

type Option option.Option[Config]

// Concurrency sets how many Await selectors may run in parallel.
// Values below one are ignored.
func Concurrency(n int) Option {
	return option.Func[Config](func(c *Config) {
		if 0 < n {
			c.Concurrency = n
		}
	})
}

// ConfigOf returns the configuration of a queryable.
// Queryables without configuration get the defaults.
func ConfigOf(q any) Config {
	if c, ok := q.(Configurable); ok {
		return c.QueryConfig()
	}
	return option.Use[Config]([]Option(nil))
}

type query[T any] struct {
	config Config
	seq    func(ctx context.Context) iterkit.ErrSeq[T]
}

func (q query[T]) Iterate(ctx context.Context) iterkit.ErrSeq[T] {
	return iterkit.WithContext(ctx, q.seq(ctx))
}

func (q query[T]) QueryConfig() Config { return q.config }

func FromSlice[T any](xs []T, opts ...Option) Queryable[T] {
	return FromErrSeq(iterkit.FromSlice(xs), opts...)
}

func FromSeq[T any](seq iter.Seq[T], opts ...Option) Queryable[T] {
	if seq == nil {
		return fail[T](errorkit.ArgumentNil("seq"))
	}
	return FromErrSeq(iterkit.ToErrSeq(seq), opts...)
}

// FromErrSeq turns an ErrSeq into a Queryable.
// Each Iterate call iterates the sequence again.
func FromErrSeq[T any](seq iterkit.ErrSeq[T], opts ...Option) Queryable[T] {
	if seq == nil {
		return fail[T](errorkit.ArgumentNil("seq"))
	}
	return query[T]{
		config: option.Use[Config](opts),
		seq:    func(context.Context) iterkit.ErrSeq[T] { return seq },
	}
}

// derive builds a queryable that keeps the configuration of its source.
func derive[T any](src any, seq func(ctx context.Context) iterkit.ErrSeq[T]) Queryable[T] {
	return query[T]{config: ConfigOf(src), seq: seq}
}

// isNil reports whether the queryable is missing,
// including a nil pointer wrapped in the interface, such as a nil *queryadapter.ViewOf.
func isNil[T any](src Queryable[T]) bool {
	if src == nil {
		return true
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func fail[T any](err error) Queryable[T] {
	return query[T]{
		config: ConfigOf(nil),
		seq:    func(context.Context) iterkit.ErrSeq[T] { return iterkit.Error[T](err) },
	}
}

// iterate guards the source iteration with the context,
// for sources that do not check it on their own.
func iterate[T any](ctx context.Context, src Queryable[T]) iterkit.ErrSeq[T] {
	return iterkit.WithContext(ctx, src.Iterate(ctx))
}
