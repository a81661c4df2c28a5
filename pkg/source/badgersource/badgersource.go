// Package badgersource stores source records in a badger database under a key prefix.
package badgersource

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/source"
	"go.llib.dev/asyncquery/pkg/source/jsoncodec"
)

// Open opens a badger database at path.
// An empty path opens an in-memory database.
// Badger's own log lines are routed to the logger at the matching level.
func Open(path string, logger *logging.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	return badger.Open(opts)
}

type badgerLogger struct {
	logger *logging.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(context.Background(), fmt.Sprintf(format, args...), logging.Field("component", "badger"))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(context.Background(), fmt.Sprintf(format, args...), logging.Field("component", "badger"))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(context.Background(), fmt.Sprintf(format, args...), logging.Field("component", "badger"))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(context.Background(), fmt.Sprintf(format, args...), logging.Field("component", "badger"))
}

// sequence keys are leased in blocks of this size.
const bandwidth = 64

// New prepares a Source over the records stored under prefix.
// The Source must be closed to release its sequence lease.
func New[T any](db *badger.DB, prefix string, codec source.Codec[T]) (*Source[T], error) {
	if db == nil {
		return nil, errorkit.ArgumentNil("db")
	}
	if codec == nil {
		codec = jsoncodec.Codec[T]{}
	}
	seq, err := db.GetSequence([]byte(prefix+"/seq"), bandwidth)
	if err != nil {
		return nil, err
	}
	return &Source[T]{
		db:     db,
		prefix: []byte(prefix + "/rec/"),
		seq:    seq,
		codec:  codec,
	}, nil
}

type Source[T any] struct {
	db     *badger.DB
	prefix []byte
	seq    *badger.Sequence
	codec  source.Codec[T]
}

func (s *Source[T]) Close() error {
	return s.seq.Release()
}

func (s *Source[T]) Append(vs ...T) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, v := range vs {
			n, err := s.seq.Next()
			if err != nil {
				return err
			}
			data, err := s.codec.Marshal(v)
			if err != nil {
				return err
			}
			if err := txn.Set(s.key(n), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Source[T]) Len() (int, error) {
	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// All iterates the records in sequence order within a read transaction.
func (s *Source[T]) All() iterkit.ErrSeq[T] {
	return func(yield func(T, error) bool) {
		var stopped bool
		err := s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = s.prefix
			it := txn.NewIterator(opts)
			defer it.Close()
			for it.Rewind(); it.Valid(); it.Next() {
				var v T
				if err := it.Item().Value(func(data []byte) error {
					return s.codec.Unmarshal(data, &v)
				}); err != nil {
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

func (s *Source[T]) key(n uint64) []byte {
	k := make([]byte, len(s.prefix)+8)
	copy(k, s.prefix)
	binary.BigEndian.PutUint64(k[len(s.prefix):], n)
	return k
}
