package lookup

import (
	"encoding/json"
	"fmt"
	"hash/maphash"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Comparer defines key equality for a Lookup.
// Keys that are Equal must have the same Hash.
type Comparer[K any] interface {
	Equal(a, b K) bool
	Hash(k K) uint64
}

// Default returns the default comparer of K.
//
// When K has an Equal(K) bool method (decimal.Decimal, nullable.Value and the like),
// the method decides equality, and the key's fmt representation is hashed.
// Otherwise the == operator is used. Floating-point NaN keys are equal to each other,
// while composite keys holding a NaN behave as they do in a Go map.
func Default[K comparable]() Comparer[K] {
	var zero K
	if _, ok := any(zero).(equalable[K]); ok {
		return equalableComparer[K]{}
	}
	var float bool
	switch reflect.TypeFor[K]().Kind() {
	case reflect.Float32, reflect.Float64:
		float = true
	}
	return defaultComparer[K]{seed: maphash.MakeSeed(), float: float}
}

type equalable[K any] interface {
	Equal(K) bool
}

type defaultComparer[K comparable] struct {
	seed maphash.Seed
	// float is set when K is a floating-point type.
	float bool
}

func (c defaultComparer[K]) Equal(a, b K) bool {
	return a == b || (c.float && a != a && b != b)
}

// nanHash is shared by every NaN key.
const nanHash uint64 = 0x7ff8000000000001

func (c defaultComparer[K]) Hash(k K) uint64 {
	if c.float && k != k {
		return nanHash
	}
	return maphash.Comparable(c.seed, k)
}

type equalableComparer[K any] struct{}

func (equalableComparer[K]) Equal(a, b K) bool {
	return any(a).(equalable[K]).Equal(b)
}

func (equalableComparer[K]) Hash(k K) uint64 {
	repr := fmt.Sprint(k)
	if repr == "-0" {
		// -0 and 0 are equal floats
		repr = "0"
	}
	return xxhash.Sum64String(repr)
}

// Func builds a Comparer out of an equality and a hash function.
func Func[K any](equal func(a, b K) bool, hash func(K) uint64) Comparer[K] {
	return funcComparer[K]{equal: equal, hash: hash}
}

type funcComparer[K any] struct {
	equal func(a, b K) bool
	hash  func(K) uint64
}

func (c funcComparer[K]) Equal(a, b K) bool { return c.equal(a, b) }
func (c funcComparer[K]) Hash(k K) uint64    { return c.hash(k) }

// FoldString compares strings case-insensitively, the way strings.EqualFold does.
func FoldString() Comparer[string] {
	return foldComparer{}
}

type foldComparer struct{}

func (foldComparer) Equal(a, b string) bool { return strings.EqualFold(a, b) }

func (foldComparer) Hash(k string) uint64 {
	return xxhash.Sum64String(strings.ToLower(k))
}

// CanonicalJSON compares keys by their RFC 8785 canonical JSON form.
// Two keys are equal when they serialise to the same canonical document,
// regardless of field order or number formatting.
// Keys that cannot be serialised fall back to their Go-syntax representation.
func CanonicalJSON[K any]() Comparer[K] {
	return canonicalJSONComparer[K]{}
}

type canonicalJSONComparer[K any] struct{}

func (c canonicalJSONComparer[K]) Equal(a, b K) bool {
	return c.canonical(a) == c.canonical(b)
}

func (c canonicalJSONComparer[K]) Hash(k K) uint64 {
	return xxhash.Sum64String(c.canonical(k))
}

func (canonicalJSONComparer[K]) canonical(k K) string {
	raw, err := json.Marshal(k)
	if err != nil {
		return fmt.Sprintf("%#v", k)
	}
	// the canonicalizer only takes objects and arrays at the top level
	out, err := jsoncanonicalizer.Transform(append(append([]byte{'['}, raw...), ']'))
	if err != nil {
		return string(raw)
	}
	return string(out[1 : len(out)-1])
}
