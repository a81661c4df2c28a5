package errorkit

import "fmt"

// ErrArgumentNil is the error kind of every missing mandatory argument.
// Use errors.Is to check for it, and As[*ArgumentNilError] to learn the parameter name.
const ErrArgumentNil Error = "argument is nil"

// ArgumentNilError tells which mandatory argument was nil.
type ArgumentNilError struct {
	Param string
}

// ArgumentNil returns an error that reports the given parameter as nil.
func ArgumentNil(param string) error {
	return &ArgumentNilError{Param: param}
}

func (err *ArgumentNilError) Error() string {
	return fmt.Sprintf("%s: %s", ErrArgumentNil, err.Param)
}

func (err *ArgumentNilError) Is(target error) bool {
	return target == ErrArgumentNil
}
