package asyncq

import (
	"context"

	"github.com/shopspring/decimal"

	"go.llib.dev/asyncquery/pkg/nullable"
)

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum adds up the elements. The sum of an empty query is zero.
func Sum[N Number](ctx context.Context, src Queryable[N]) (N, error) {
	return Aggregate(ctx, src, N(0), func(acc, v N) N { return acc + v })
}

// SumNullable adds up the non-null elements.
func SumNullable[N Number](ctx context.Context, src Queryable[nullable.Value[N]]) (N, error) {
	return Aggregate(ctx, src, N(0), func(acc N, v nullable.Value[N]) N { return acc + v.OrZero() })
}

func SumDecimal(ctx context.Context, src Queryable[decimal.Decimal]) (decimal.Decimal, error) {
	return Aggregate(ctx, src, decimal.Zero, decimal.Decimal.Add)
}

func SumNullableDecimal(ctx context.Context, src Queryable[nullable.Value[decimal.Decimal]]) (decimal.Decimal, error) {
	return Aggregate(ctx, src, decimal.Zero, func(acc decimal.Decimal, v nullable.Value[decimal.Decimal]) decimal.Decimal {
		if d, ok := v.Get(); ok {
			return acc.Add(d)
		}
		return acc
	})
}

type average[T any] struct {
	sum T
	n   int64
}

// Average computes the arithmetic mean as float64.
// An empty query fails with ErrNoElements.
func Average[N Number](ctx context.Context, src Queryable[N]) (float64, error) {
	avg, err := Aggregate(ctx, src, average[float64]{}, func(acc average[float64], v N) average[float64] {
		return average[float64]{sum: acc.sum + float64(v), n: acc.n + 1}
	})
	if err != nil {
		return 0, err
	}
	if avg.n == 0 {
		return 0, ErrNoElements
	}
	return avg.sum / float64(avg.n), nil
}

func AverageDecimal(ctx context.Context, src Queryable[decimal.Decimal]) (decimal.Decimal, error) {
	avg, err := Aggregate(ctx, src, average[decimal.Decimal]{sum: decimal.Zero}, func(acc average[decimal.Decimal], v decimal.Decimal) average[decimal.Decimal] {
		return average[decimal.Decimal]{sum: acc.sum.Add(v), n: acc.n + 1}
	})
	if err != nil {
		return decimal.Zero, err
	}
	if avg.n == 0 {
		return decimal.Zero, ErrNoElements
	}
	return avg.sum.Div(decimal.NewFromInt(avg.n)), nil
}
