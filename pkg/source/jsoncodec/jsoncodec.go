// Package jsoncodec encodes source records as JSON.
package jsoncodec

import (
	"encoding/json"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Codec is a JSON codec for T.
// With Canonical set, the output follows RFC 8785,
// so equal records always produce the same bytes.
type Codec[T any] struct {
	Canonical bool
}

func (c Codec[T]) Marshal(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !c.Canonical {
		return data, nil
	}
	return Canonicalize(data)
}

// Canonicalize rewrites a JSON value into its RFC 8785 form.
// Scalars are accepted as well as objects and arrays.
func Canonicalize(data []byte) ([]byte, error) {
	wrapped := make([]byte, 0, len(data)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, ']')
	out, err := jsoncanonicalizer.Transform(wrapped)
	if err != nil {
		return nil, err
	}
	return out[1 : len(out)-1], nil
}

func (c Codec[T]) Unmarshal(data []byte, ptr *T) error {
	return json.Unmarshal(data, ptr)
}
