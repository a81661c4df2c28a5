package boltsource_test

import (
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.llib.dev/testcase"

	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/source/boltsource"
	"go.llib.dev/asyncquery/pkg/source/jsoncodec"
	"go.llib.dev/asyncquery/pkg/source/sourcecontract"
)

type record struct {
	ID    int     `json:"id"`
	Price float64 `json:"price"`
}

func openDB(tb testing.TB) *bolt.DB {
	db, err := boltsource.Open(filepath.Join(tb.TempDir(), "records.db"))
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSource(t *testing.T) {
	sourcecontract.Source(t,
		func(tb testing.TB) sourcecontract.Subject[record] {
			src, err := boltsource.New[record](openDB(tb), "records", jsoncodec.Codec[record]{Canonical: true})
			require.NoError(tb, err)
			return sourcecontract.Subject[record]{
				Source: src,
				Append: func(tb testing.TB, vs ...record) { require.NoError(tb, src.Append(vs...)) },
			}
		},
		func(t *testcase.T) record {
			return record{ID: t.Random.Int(), Price: float64(t.Random.IntBetween(0, 1000)) / 4}
		})
}

func TestSource_Len(t *testing.T) {
	src, err := boltsource.New[record](openDB(t), "records", nil)
	require.NoError(t, err)

	n, err := src.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, src.Append(record{ID: 1}, record{ID: 2}))
	n, err = src.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSource_reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	db, err := boltsource.Open(path)
	require.NoError(t, err)
	src, err := boltsource.New[record](db, "records", nil)
	require.NoError(t, err)
	require.NoError(t, src.Append(record{ID: 1}, record{ID: 2}))
	require.NoError(t, db.Close())

	db, err = boltsource.Open(path)
	require.NoError(t, err)
	defer db.Close()
	src, err = boltsource.New[record](db, "records", nil)
	require.NoError(t, err)
	require.NoError(t, src.Append(record{ID: 3}))

	got, err := iterkit.CollectErr(src.All())
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1}, {ID: 2}, {ID: 3}}, got)
}

func TestSource_missingBucket(t *testing.T) {
	db := openDB(t)
	src := &boltsource.Source[record]{DB: db, Bucket: []byte("nope"), Codec: jsoncodec.Codec[record]{}}

	_, err := iterkit.CollectErr(src.All())
	assert.ErrorIs(t, err, boltsource.ErrBucketNotFound)
}

func TestSource_corruptRecord(t *testing.T) {
	db := openDB(t)
	src, err := boltsource.New[record](db, "records", nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("records")).Put([]byte("x"), []byte("{"))
	}))

	_, err = iterkit.CollectErr(src.All())
	assert.Error(t, err)
}
