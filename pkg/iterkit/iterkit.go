// Package iterkit provides the iterator helpers the query packages are built on.
//
// # Summary
//
// An iterator's goal is to decouple the origin of the data from the consumer who uses that data.
// Most commonly, iterators hide whether the data comes from a specific database, an in-memory slice, or elsewhere.
// The query operators in this module consume and produce ErrSeq values,
// so a failure coming from a data source travels along with the data stream.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
// https://en.wikipedia.org/wiki/Pipeline_(software)
package iterkit

import (
	"fmt"
	"iter"
	"slices"

	"go.llib.dev/asyncquery/pkg/errorkit"
)

// ErrSeq is an iterator that can tell if a currently returned value has an issue or not.
type ErrSeq[T any] = iter.Seq2[T, error]

func Slice[T any](slice []T) iter.Seq[T] {
	return slices.Values(slice)
}

// FromSlice returns an ErrSeq over the slice values.
func FromSlice[T any](slice []T) ErrSeq[T] {
	return ToErrSeq(Slice(slice))
}

// ToErrSeq will turn a iter.Seq[T] into an iter.Seq2[T, error] iterator.
func ToErrSeq[T any](i iter.Seq[T]) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		for v := range i {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Error returns an iterator whose only element is the error.
func Error[T any](err error) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// ErrorF behaves exactly like fmt.ErrorF but returns the error wrapped as iterator
func ErrorF[T any](format string, a ...any) ErrSeq[T] {
	return Error[T](fmt.Errorf(format, a...))
}

// Empty iterator is used to represent nil result with Null object pattern
func Empty[T any]() ErrSeq[T] {
	return func(yield func(T, error) bool) {}
}

func Collect[T any](i iter.Seq[T]) []T {
	if i == nil {
		return nil
	}
	var vs = make([]T, 0)
	for v := range i {
		vs = append(vs, v)
	}
	return vs
}

// CollectErr collects every value and merges every error the iterator yields.
func CollectErr[T any](i ErrSeq[T]) ([]T, error) {
	if i == nil {
		return nil, nil
	}
	var (
		vs   []T
		errs []error
	)
	for v, err := range i {
		if err == nil {
			vs = append(vs, v)
		} else {
			errs = append(errs, err)
		}
	}
	return vs, errorkit.Merge(errs...)
}

// Map allows you to do additional transformation on the values.
// Errors are passed through untouched.
func Map[To any, From any](i ErrSeq[From], transform func(From) (To, error)) ErrSeq[To] {
	return func(yield func(To, error) bool) {
		for v, err := range i {
			if err != nil {
				var zero To
				if !yield(zero, err) {
					return
				}
				continue
			}
			if !yield(transform(v)) {
				return
			}
		}
	}
}

// Filter keeps the values the filter accepts.
// A filter error is yielded in place of the value.
func Filter[T any](i ErrSeq[T], filter func(T) (bool, error)) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		for v, err := range i {
			if err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			ok, err := filter(v)
			if err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			if ok && !yield(v, nil) {
				return
			}
		}
	}
}

// Head takes the first n element, similarly how the coreutils "head" app works.
// Errors do not count towards n.
func Head[T any](i ErrSeq[T], n int) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		var taken int
		for v, err := range i {
			if err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
			taken++
			if n <= taken {
				return
			}
		}
	}
}

// Offset skips the first n values.
func Offset[T any](i ErrSeq[T], n int) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		var skipped int
		for v, err := range i {
			if err != nil {
				var zero T
				if !yield(zero, err) {
					return
				}
				continue
			}
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
