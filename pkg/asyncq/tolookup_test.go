package asyncq_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/asyncquery/internal/testkit"
	"go.llib.dev/asyncquery/pkg/asyncq"
	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/lookup"
	"go.llib.dev/asyncquery/pkg/nullable"
	"go.llib.dev/asyncquery/pkg/queryadapter"
)

func TestToLookup_seed(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("keys are shifted by three and each holds its own element", func(t *testcase.T) {
		adapter := testkit.GetQueryAdapter(t, queryadapter.DisallowAll)
		view := testkit.GetQueryable(t, adapter, []int{1, 2, 3})

		got, err := asyncq.ToLookup(context.Background(), view, func(p int) int { return p + 3 })
		t.Must.NoError(err)

		expected := lookup.Of([]int{1, 2, 3}, func(p int) int { return p + 3 })
		t.Must.True(lookup.Equal(expected, got))
		t.Must.True(lookup.KeysInOrder(expected, got))
		assert.Equal(t, 3, got.Count())
		for k, vs := range map[int][]int{4: {1}, 5: {2}, 6: {3}} {
			var values []int
			for v := range got.Get(k) {
				values = append(values, v)
			}
			assert.Equal(t, vs, values)
		}
	})
}

func TestToLookup_nanAndSignedZeroKeys(t *testing.T) {
	s := testcase.NewSpec(t)
	nan, negZero := math.NaN(), math.Copysign(0, -1)

	s.Test("float64 keys", func(t *testcase.T) {
		xs := []float64{nan, nan, 1, negZero, 0}
		got, err := asyncq.ToLookup(context.Background(), asyncq.FromSlice(xs), func(p float64) float64 { return p })
		t.Must.NoError(err)
		assert.Equal(t, 3, got.Count())
		t.Must.True(lookup.EqualFunc(lookup.Of(xs, func(p float64) float64 { return p }), got, equal[float64]))
	})

	s.Test("nullable float64 keys group like plain ones", func(t *testcase.T) {
		xs := []nullable.Value[float64]{nullable.Of(nan), nullable.Of(nan), nullable.Of(1.0),
			nullable.Of(negZero), nullable.Of(0.0), nullable.Null[float64]()}
		id := func(p nullable.Value[float64]) nullable.Value[float64] { return p }
		got, err := asyncq.ToLookupAwait(context.Background(), asyncq.FromSlice(xs, asyncq.Concurrency(2)),
			func(p nullable.Value[float64]) (nullable.Value[float64], error) { return p, nil })
		t.Must.NoError(err)
		assert.Equal(t, 4, got.Count())
		t.Must.True(lookup.EqualFunc(lookup.Of(xs, id), got, equal[nullable.Value[float64]]))
		t.Must.True(lookup.EqualFunc(got, got, equal[nullable.Value[float64]]))
	})

	s.Test("nullable float32 NaN keys", func(t *testcase.T) {
		nan32 := nullable.Of(float32(math.NaN()))
		got, err := asyncq.ToLookup(context.Background(), asyncq.FromSlice([]nullable.Value[float32]{nan32, nan32}),
			func(p nullable.Value[float32]) nullable.Value[float32] { return p })
		t.Must.NoError(err)
		assert.Equal(t, 1, got.Count())
	})
}

func TestToLookup_int(t *testing.T) {
	testLookupProperties(t, testkit.RandomInt, func(p int) int { return p + 3 })
}

func TestToLookup_nullableInt(t *testing.T) {
	testLookupProperties(t, testkit.RandomNullable(testkit.RandomInt), plus3Nullable(func(p int) int { return p + 3 }))
}

func TestToLookup_int64(t *testing.T) {
	testLookupProperties(t, testkit.RandomInt64, func(p int64) int64 { return p + 3 })
}

func TestToLookup_nullableInt64(t *testing.T) {
	testLookupProperties(t, testkit.RandomNullable(testkit.RandomInt64), plus3Nullable(func(p int64) int64 { return p + 3 }))
}

func TestToLookup_float32(t *testing.T) {
	testLookupProperties(t, testkit.RandomFloat32, func(p float32) float32 { return p + 3 })
}

func TestToLookup_nullableFloat32(t *testing.T) {
	testLookupProperties(t, testkit.RandomNullable(testkit.RandomFloat32), plus3Nullable(func(p float32) float32 { return p + 3 }))
}

func TestToLookup_float64(t *testing.T) {
	testLookupProperties(t, testkit.RandomFloat64, func(p float64) float64 { return p + 3 })
}

func TestToLookup_nullableFloat64(t *testing.T) {
	testLookupProperties(t, testkit.RandomNullable(testkit.RandomFloat64), plus3Nullable(func(p float64) float64 { return p + 3 }))
}

var three = decimal.NewFromInt(3)

func TestToLookup_decimal(t *testing.T) {
	testLookupProperties(t, testkit.RandomDecimal, func(p decimal.Decimal) decimal.Decimal { return p.Add(three) })
}

func TestToLookup_nullableDecimal(t *testing.T) {
	testLookupProperties(t, testkit.RandomNullable(testkit.RandomDecimal), plus3Nullable(func(p decimal.Decimal) decimal.Decimal { return p.Add(three) }))
}

func plus3Nullable[T any](plus3 func(T) T) func(nullable.Value[T]) nullable.Value[T] {
	return func(p nullable.Value[T]) nullable.Value[T] { return nullable.Map(p, plus3) }
}

// equal compares with the type's own Equal method when it has one.
func equal[T comparable](a, b T) bool {
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(b)
	}
	return a == b || (a != a && b != b)
}

func describe[T any](p T) string { return fmt.Sprint(p) }

type keyFunc[T any] = func(T) T

type elemFunc[T any] = func(T) string

// convention is one of the three ways a selector can be handed to the lookup operators.
type convention[T comparable] struct {
	name     string
	byKey    func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, T], error)
	byKeyAnd func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], elem elemFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, string], error)
}

func awaitOf[T, R any](fn func(T) R) func(T) (R, error) {
	if fn == nil {
		return nil
	}
	return func(v T) (R, error) { return fn(v), nil }
}

func awaitWithCancellationOf[T, R any](fn func(T) R) func(context.Context, T) (R, error) {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, v T) (R, error) {
		if err := ctx.Err(); err != nil {
			var zero R
			return zero, err
		}
		return fn(v), nil
	}
}

func conventions[T comparable]() []convention[T] {
	return []convention[T]{
		{
			name:     "sync selectors",
			byKey:    asyncq.ToLookup[T, T],
			byKeyAnd: asyncq.ToLookupWithElement[T, T, string],
		},
		{
			name: "await selectors",
			byKey: func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, T], error) {
				return asyncq.ToLookupAwait(ctx, src, awaitOf(key), opts...)
			},
			byKeyAnd: func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], elem elemFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, string], error) {
				return asyncq.ToLookupAwaitWithElement(ctx, src, awaitOf(key), awaitOf(elem), opts...)
			},
		},
		{
			name: "await selectors with cancellation",
			byKey: func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, T], error) {
				return asyncq.ToLookupAwaitWithCancellation(ctx, src, awaitWithCancellationOf(key), opts...)
			},
			byKeyAnd: func(ctx context.Context, src asyncq.Queryable[T], key keyFunc[T], elem elemFunc[T], opts ...lookup.Option[T]) (*lookup.Lookup[T, string], error) {
				return asyncq.ToLookupAwaitWithCancellationWithElement(ctx, src, awaitWithCancellationOf(key), awaitWithCancellationOf(elem), opts...)
			},
		},
	}
}

type shape struct {
	name     string
	element  bool
	comparer bool
}

var shapes = []shape{
	{name: "key selector"},
	{name: "key selector and comparer", comparer: true},
	{name: "key and element selector", element: true},
	{name: "key and element selector and comparer", element: true, comparer: true},
}

// testLookupProperties checks every lookup operator against the synchronous lookup.Of baseline
// for every overload shape and calling convention.
func testLookupProperties[T comparable](tb *testing.T, mk func() T, plus3 func(T) T) {
	s := testcase.NewSpec(tb)

	for _, policy := range []queryadapter.Policy{queryadapter.DisallowAll, queryadapter.AllowAll} {
		s.Context(policy.String(), func(s *testcase.Spec) {
			adapterOpts := testcase.LetValue[[]queryadapter.Option](s, nil)
			adapter := testcase.Let(s, func(t *testcase.T) *queryadapter.Adapter {
				return testkit.GetQueryAdapter(t, policy, adapterOpts.Get(t)...)
			})
			xs := testcase.Let(s, func(t *testcase.T) []T {
				return testkit.RandomSlice(32, mk)
			})
			ctx := testcase.Let(s, func(t *testcase.T) context.Context {
				return context.Background()
			})

			for _, conv := range conventions[T]() {
				for _, sh := range shapes {
					s.Context(conv.name+" with "+sh.name, func(s *testcase.Spec) {
						opts := func() []lookup.Option[T] {
							if sh.comparer {
								return []lookup.Option[T]{lookup.WithComparer(lookup.CanonicalJSON[T]())}
							}
							return nil
						}
						key := testcase.Let(s, func(t *testcase.T) keyFunc[T] { return plus3 })
						elem := testcase.Let(s, func(t *testcase.T) elemFunc[T] { return describe[T] })
						src := testcase.Let(s, func(t *testcase.T) asyncq.Queryable[T] {
							return testkit.GetQueryable(t, adapter.Get(t), xs.Get(t))
						})
						// act returns whether the result matches the baseline.
						act := func(t *testcase.T) (bool, error) {
							if sh.element {
								got, err := conv.byKeyAnd(ctx.Get(t), src.Get(t), key.Get(t), elem.Get(t), opts()...)
								if err != nil {
									t.Must.Nil(got)
									return false, err
								}
								exp := lookup.OfElements(xs.Get(t), plus3, describe[T], opts()...)
								return lookup.Equal(exp, got) && lookup.KeysInOrder(exp, got), nil
							}
							got, err := conv.byKey(ctx.Get(t), src.Get(t), key.Get(t), opts()...)
							if err != nil {
								t.Must.Nil(got)
								return false, err
							}
							exp := lookup.Of(xs.Get(t), plus3, opts()...)
							return lookup.EqualFunc(exp, got, equal[T]) && lookup.KeysInOrder(exp, got), nil
						}

						s.Then("the result equals the synchronous lookup", func(t *testcase.T) {
							ok, err := act(t)
							t.Must.NoError(err)
							t.Must.True(ok)
						})

						s.Then("repeated calls give equal results", func(t *testcase.T) {
							for i := 0; i < 2; i++ {
								ok, err := act(t)
								t.Must.NoError(err)
								t.Must.True(ok)
							}
						})

						s.When("the selectors run concurrently", func(s *testcase.Spec) {
							adapterOpts.Let(s, func(t *testcase.T) []queryadapter.Option {
								return []queryadapter.Option{queryadapter.WithConcurrency(4)}
							})
							xs.Let(s, func(t *testcase.T) []T {
								return testkit.RandomSlice(128, mk)
							})

							s.Then("the result still equals the synchronous lookup", func(t *testcase.T) {
								ok, err := act(t)
								t.Must.NoError(err)
								t.Must.True(ok)
							})
						})

						s.When("the context is already cancelled", func(s *testcase.Spec) {
							ctx.Let(s, func(t *testcase.T) context.Context {
								return testkit.CancelledContext()
							})

							s.Then("it fails with the cancellation", func(t *testcase.T) {
								_, err := act(t)
								t.Must.ErrorIs(context.Canceled, err)
							})
						})

						thenArgumentNil := func(s *testcase.Spec, param string) {
							s.Then("it fails naming the "+param+" argument", func(t *testcase.T) {
								_, err := act(t)
								t.Must.ErrorIs(errorkit.ErrArgumentNil, err)
								var argErr *errorkit.ArgumentNilError
								t.Must.True(errors.As(err, &argErr))
								t.Must.Equal(param, argErr.Param)
							})
						}

						s.When("the source is nil", func(s *testcase.Spec) {
							src.LetValue(s, nil)
							thenArgumentNil(s, "source")

							s.And("the context is cancelled as well", func(s *testcase.Spec) {
								ctx.Let(s, func(t *testcase.T) context.Context {
									return testkit.CancelledContext()
								})
								thenArgumentNil(s, "source")
							})
						})

						s.When("the key selector is nil", func(s *testcase.Spec) {
							key.LetValue(s, nil)
							thenArgumentNil(s, "keySelector")
						})

						if sh.element {
							s.When("the element selector is nil", func(s *testcase.Spec) {
								elem.LetValue(s, nil)
								thenArgumentNil(s, "elementSelector")
							})
						}
					})
				}
			}
		})
	}
}
