package nullable_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"go.llib.dev/asyncquery/pkg/nullable"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestValue(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("zero value is null", func(t *testcase.T) {
		var v nullable.Value[int]
		_, ok := v.Get()
		assert.False(t, ok)
		assert.Equal(t, "null", v.String())
		assert.Equal(t, 0, v.OrZero())
	})

	s.Test("Of holds the value", func(t *testcase.T) {
		n := t.Random.Int()
		v, ok := nullable.Of(n).Get()
		assert.True(t, ok)
		assert.Equal(t, n, v)
	})

	s.Test("Map keeps null as null", func(t *testcase.T) {
		plus3 := func(n int) int { return n + 3 }
		assert.Equal(t, nullable.Null[int](), nullable.Map(nullable.Null[int](), plus3))
		assert.Equal(t, nullable.Of(5), nullable.Map(nullable.Of(2), plus3))
	})

	s.Test("values are comparable with ==", func(t *testcase.T) {
		assert.True(t, nullable.Of(1) == nullable.Of(1))
		assert.True(t, nullable.Null[int]() == nullable.Null[int]())
		assert.True(t, nullable.Of(0) != nullable.Null[int]())
	})

	s.Test("Equal defers to the value's own Equal method", func(t *testcase.T) {
		a := nullable.Of(decimal.RequireFromString("1.50"))
		b := nullable.Of(decimal.RequireFromString("1.5"))
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(nullable.Null[decimal.Decimal]()))
		assert.True(t, nullable.Null[decimal.Decimal]().Equal(nullable.Null[decimal.Decimal]()))
	})

	s.Test("NaN values are equal to each other", func(t *testcase.T) {
		nan := nullable.Of(math.NaN())
		assert.True(t, nan.Equal(nullable.Of(math.NaN())))
		assert.False(t, nan.Equal(nullable.Of(1.0)))
		assert.False(t, nan.Equal(nullable.Null[float64]()))
		assert.True(t, nullable.Of(float32(math.NaN())).Equal(nullable.Of(float32(math.NaN()))))
		assert.True(t, nullable.Of(math.Copysign(0, -1)).Equal(nullable.Of(0.0)))
	})

	s.Test("pointer round trip", func(t *testcase.T) {
		assert.Nil(t, nullable.Null[int]().Ptr())
		n := 7
		assert.Equal(t, nullable.Of(7), nullable.FromPointer(&n))
		assert.Equal(t, nullable.Null[int](), nullable.FromPointer[int](nil))
		assert.Equal(t, 7, *nullable.Of(7).Ptr())
	})
}

func TestValue_JSON(t *testing.T) {
	type record struct {
		A nullable.Value[int]     `json:"a"`
		B nullable.Value[float64] `json:"b"`
	}

	bs, err := json.Marshal(record{A: nullable.Of(4)})
	assert.NoError(t, err)
	assert.Equal(t, `{"a":4,"b":null}`, string(bs))

	var got record
	assert.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":2.5}`), &got))
	assert.Equal(t, record{B: nullable.Of(2.5)}, got)
}
