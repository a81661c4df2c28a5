// Package nullable provides a comparable optional value,
// used wherever a query element or key may be absent, such as an int? column.
package nullable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Value is either a T or null.
// The zero Value is null.
type Value[T any] struct {
	V     T
	Valid bool
}

// Of returns a non-null Value.
func Of[T any](v T) Value[T] {
	return Value[T]{V: v, Valid: true}
}

// Null returns the null Value of T.
func Null[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it is present.
func (n Value[T]) Get() (T, bool) {
	return n.V, n.Valid
}

// OrZero returns the value, or the zero T when null.
func (n Value[T]) OrZero() T {
	if !n.Valid {
		var zero T
		return zero
	}
	return n.V
}

// Equal reports whether two values are equal.
// Two nulls are equal. When T has an Equal(T) bool method, it decides,
// otherwise the == operator does, except that two floating-point NaNs are equal.
func (n Value[T]) Equal(oth Value[T]) bool {
	if n.Valid != oth.Valid {
		return false
	}
	if !n.Valid {
		return true
	}
	if eq, ok := any(n.V).(interface{ Equal(T) bool }); ok {
		return eq.Equal(oth.V)
	}
	if isNaN(n.V) && isNaN(oth.V) {
		return true
	}
	return any(n.V) == any(oth.V)
}

func isNaN(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	default:
		return false
	}
}

func (n Value[T]) String() string {
	if !n.Valid {
		return "null"
	}
	return fmt.Sprint(n.V)
}

var null = []byte("null")

func (n Value[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return null, nil
	}
	return json.Marshal(n.V)
}

func (n *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), null) {
		*n = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Of(v)
	return nil
}

// Map lifts fn over a nullable value: null stays null.
func Map[T, R any](n Value[T], fn func(T) R) Value[R] {
	if !n.Valid {
		return Null[R]()
	}
	return Of(fn(n.V))
}

// FromPointer converts a pointer, where nil means null.
func FromPointer[T any](ptr *T) Value[T] {
	if ptr == nil {
		return Null[T]()
	}
	return Of(*ptr)
}

// Ptr returns a pointer to a copy of the value, or nil when null.
func (n Value[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}
