// Package source holds the synchronous data sources that query adapters turn into async queryables.
package source

import (
	"sync"

	"go.llib.dev/asyncquery/pkg/iterkit"
)

// Source is a synchronous, re-iterable collection.
// Every All call starts a new iteration from the first element.
type Source[T any] interface {
	All() iterkit.ErrSeq[T]
}

// Codec turns records into bytes and back, for sources backed by a key-value store.
type Codec[T any] interface {
	Marshal(v T) ([]byte, error)
	Unmarshal(data []byte, ptr *T) error
}

// Func adapts a function to the Source interface.
type Func[T any] func() iterkit.ErrSeq[T]

func (fn Func[T]) All() iterkit.ErrSeq[T] { return fn() }

func NewMemory[T any](vs ...T) *Memory[T] {
	m := &Memory[T]{}
	m.Append(vs...)
	return m
}

// Memory is an in-memory Source.
// It is safe for concurrent use, an iteration sees the values present when it started.
type Memory[T any] struct {
	mutex  sync.RWMutex
	values []T
}

func (m *Memory[T]) Append(vs ...T) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values = append(m.values, vs...)
}

func (m *Memory[T]) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.values)
}

func (m *Memory[T]) All() iterkit.ErrSeq[T] {
	return func(yield func(T, error) bool) {
		m.mutex.RLock()
		snapshot := m.values[:len(m.values):len(m.values)]
		m.mutex.RUnlock()
		for _, v := range snapshot {
			if !yield(v, nil) {
				return
			}
		}
	}
}
