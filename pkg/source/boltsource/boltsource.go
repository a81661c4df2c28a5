// Package boltsource stores source records in a bolt bucket.
package boltsource

import (
	"encoding/binary"

	"github.com/boltdb/bolt"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/source"
	"go.llib.dev/asyncquery/pkg/source/jsoncodec"
)

const ErrBucketNotFound errorkit.Error = "bucket not found"

// Open opens the bolt database at path, creating the file when needed.
func Open(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0600, nil)
}

// New prepares a Source over the named bucket, creating the bucket when it is missing.
// Records are encoded as JSON unless a codec is given.
func New[T any](db *bolt.DB, bucket string, codec source.Codec[T]) (*Source[T], error) {
	if codec == nil {
		codec = jsoncodec.Codec[T]{}
	}
	s := &Source[T]{DB: db, Bucket: []byte(bucket), Codec: codec}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.Bucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Source keeps its records under big-endian sequence keys,
// so the bucket's key order is the insertion order.
type Source[T any] struct {
	DB     *bolt.DB
	Bucket []byte
	Codec  source.Codec[T]
}

// Append stores the values in a single transaction.
func (s *Source[T]) Append(vs ...T) error {
	return s.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := s.bucket(tx)
		if err != nil {
			return err
		}
		for _, v := range vs {
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			data, err := s.Codec.Marshal(v)
			if err != nil {
				return err
			}
			if err := bucket.Put(uintToBytes(seq), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Source[T]) Len() (int, error) {
	var n int
	err := s.DB.View(func(tx *bolt.Tx) error {
		bucket, err := s.bucket(tx)
		if err != nil {
			return err
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

// All iterates the records within a read transaction.
// The transaction stays open until the iteration ends.
func (s *Source[T]) All() iterkit.ErrSeq[T] {
	return func(yield func(T, error) bool) {
		var stopped bool
		err := s.DB.View(func(tx *bolt.Tx) error {
			bucket, err := s.bucket(tx)
			if err != nil {
				return err
			}
			c := bucket.Cursor()
			for k, data := c.First(); k != nil; k, data = c.Next() {
				var v T
				if err := s.Codec.Unmarshal(data, &v); err != nil {
					return err
				}
				if !yield(v, nil) {
					stopped = true
					return nil
				}
			}
			return nil
		})
		if err != nil && !stopped {
			var zero T
			yield(zero, err)
		}
	}
}

func (s *Source[T]) bucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket(s.Bucket)
	if bucket == nil {
		return nil, ErrBucketNotFound.F("%s", s.Bucket)
	}
	return bucket, nil
}

func uintToBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
