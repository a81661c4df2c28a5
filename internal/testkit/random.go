package testkit

import (
	"github.com/Pallinder/go-randomdata"
	"github.com/shopspring/decimal"

	"go.llib.dev/asyncquery/pkg/nullable"
)

// The generators keep values in a narrow range, so random sequences repeat keys.

func RandomInt() int { return randomdata.Number(-16, 16) }

func RandomInt64() int64 { return int64(randomdata.Number(-16, 16)) * 1_000_000_007 }

// RandomFloat32 returns quarters, which float32 represents exactly.
func RandomFloat32() float32 { return float32(randomdata.Number(-64, 64)) / 4 }

func RandomFloat64() float64 { return randomdata.Decimal(-8, 8, 1) }

func RandomDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(randomdata.Number(-800, 800))).Shift(-2)
}

// RandomNullable returns a null value about one time in five.
func RandomNullable[T any](mk func() T) func() nullable.Value[T] {
	return func() nullable.Value[T] {
		if randomdata.Number(0, 5) == 0 {
			return nullable.Null[T]()
		}
		return nullable.Of(mk())
	}
}

// RandomSlice returns up to max values made by mk.
func RandomSlice[T any](max int, mk func() T) []T {
	n := randomdata.Number(0, max+1)
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, mk())
	}
	return out
}
