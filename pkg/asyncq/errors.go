package asyncq

import "go.llib.dev/asyncquery/pkg/errorkit"

const (
	ErrNoElements   errorkit.Error = "sequence contains no elements"
	ErrDuplicateKey errorkit.Error = "an element with the same key has already been added"
)
