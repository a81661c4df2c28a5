package main

import (
	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/source"
	"go.llib.dev/asyncquery/pkg/source/badgersource"
	"go.llib.dev/asyncquery/pkg/source/boltsource"
	"go.llib.dev/asyncquery/pkg/source/jsoncodec"
)

// Record is a schemaless JSON object as loaded from a JSON Lines input.
type Record map[string]any

type Store interface {
	source.Source[Record]
	Append(vs ...Record) error
	Len() (int, error)
	Close() error
}

var recordCodec = jsoncodec.Codec[Record]{Canonical: true}

func OpenStore(c StoreConfig, logger *logging.Logger) (Store, error) {
	switch c.Driver {
	case "bolt":
		db, err := boltsource.Open(c.Path)
		if err != nil {
			return nil, err
		}
		src, err := boltsource.New[Record](db, c.Bucket, recordCodec)
		if err != nil {
			return nil, errorkit.Merge(err, db.Close())
		}
		return boltStore{Source: src}, nil

	case "badger":
		db, err := badgersource.Open(c.Path, logger)
		if err != nil {
			return nil, err
		}
		src, err := badgersource.New[Record](db, c.Bucket, recordCodec)
		if err != nil {
			return nil, errorkit.Merge(err, db.Close())
		}
		return badgerStore{Source: src, db: db}, nil

	default:
		return nil, ErrInvalidConfig.F("unknown store driver: %q", c.Driver)
	}
}

type boltStore struct{ *boltsource.Source[Record] }

func (s boltStore) Close() error { return s.DB.Close() }

type badgerStore struct {
	*badgersource.Source[Record]
	db interface{ Close() error }
}

func (s badgerStore) Close() error {
	return errorkit.Merge(s.Source.Close(), s.db.Close())
}
