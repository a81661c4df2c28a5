// Package sourcecontract holds the behaviour every source.Source implementation must satisfy.
package sourcecontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/source"
)

type Subject[T any] struct {
	Source source.Source[T]
	// Append stores the values at the end of the source.
	Append func(tb testing.TB, vs ...T)
}

// Source runs the contract against the subjects made by mk.
// Each test gets a fresh, empty subject.
func Source[T any](t *testing.T, mk func(tb testing.TB) Subject[T], mkValue func(t *testcase.T) T) {
	s := testcase.NewSpec(t)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		return mk(t)
	})

	collect := func(t *testcase.T) []T {
		vs, err := iterkit.CollectErr(subject.Get(t).Source.All())
		t.Must.NoError(err)
		return vs
	}

	s.When("the source is empty", func(s *testcase.Spec) {
		s.Then("iteration yields nothing", func(t *testcase.T) {
			assert.Empty(t, collect(t))
		})
	})

	s.When("values are appended", func(s *testcase.Spec) {
		values := testcase.Let(s, func(t *testcase.T) []T {
			n := t.Random.IntBetween(1, 7)
			var vs []T
			for i := 0; i < n; i++ {
				vs = append(vs, mkValue(t))
			}
			return vs
		})
		s.Before(func(t *testcase.T) {
			subject.Get(t).Append(t, values.Get(t)...)
		})

		s.Then("they are yielded in insertion order", func(t *testcase.T) {
			assert.Equal(t, values.Get(t), collect(t))
		})

		s.Then("iterating again yields the same values", func(t *testcase.T) {
			assert.Equal(t, collect(t), collect(t))
		})

		s.Then("the iteration can be stopped early", func(t *testcase.T) {
			var got []T
			for v, err := range subject.Get(t).Source.All() {
				t.Must.NoError(err)
				got = append(got, v)
				break
			}
			assert.Equal(t, values.Get(t)[:1], got)
		})

		s.And("more values are appended later", func(s *testcase.Spec) {
			more := testcase.Let(s, func(t *testcase.T) T { return mkValue(t) })
			s.Before(func(t *testcase.T) {
				subject.Get(t).Append(t, more.Get(t))
			})

			s.Then("they come after the earlier ones", func(t *testcase.T) {
				assert.Equal(t, append(values.Get(t), more.Get(t)), collect(t))
			})
		})
	})
}
