package errorkit

import (
	"errors"
	"fmt"
)

// Error is a string error kind that can be declared as a constant,
// the way the query packages declare theirs:
//
//	const ErrNoElements errorkit.Error = "sequence contains no elements"
type Error string

// Error implement the error interface
func (err Error) Error() string { return string(err) }

// Wrap attaches the cause to the error kind.
// The result matches both with errors.Is.
func (err Error) Wrap(oth error) error {
	if oth == nil {
		return err
	}
	return wrapper{Owner: err, Wrapped: oth}
}

// F wraps a formatted cause, as in ErrDuplicateKey.F("key %v", k).
func (err Error) F(format string, a ...any) error { return err.Wrap(fmt.Errorf(format, a...)) }

type wrapper struct {
	Owner   Error
	Wrapped error // must be not nil
}

func (w wrapper) Error() string {
	return fmt.Sprintf("[%s] %s", w.Owner, w.Wrapped.Error())
}

func (w wrapper) As(target any) bool {
	return errors.As(w.Owner, target) || errors.As(w.Wrapped, target)
}

func (w wrapper) Is(target error) bool {
	return errors.Is(w.Owner, target) || errors.Is(w.Wrapped, target)
}

func (w wrapper) Unwrap() error { return w.Wrapped }
