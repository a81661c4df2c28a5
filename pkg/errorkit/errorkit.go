// Package errorkit holds the error kinds and error helpers shared by the query packages.
package errorkit

import "errors"

// Finish is a helper function that can be used from a deferred context.
//
// Usage:
//
//	defer errorkit.Finish(&returnError, db.Close)
func Finish(returnErr *error, blk func() error) {
	*returnErr = Merge(*returnErr, blk())
}

// As is a generic version of errors.As.
func As[T any](err error) (T, bool) {
	var v T
	ok := errors.As(err, &v)
	return v, ok
}
