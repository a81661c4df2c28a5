package testkit

import (
	"context"
	"testing"

	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/queryadapter"
	"go.llib.dev/asyncquery/pkg/source"
)

// GetQueryAdapter obtains an adapter with the policy from a registry private to the test.
// The adapter logs into the test's log.
func GetQueryAdapter(tb testing.TB, policy queryadapter.Policy, opts ...queryadapter.Option) *queryadapter.Adapter {
	tb.Helper()
	opts = append([]queryadapter.Option{queryadapter.WithLogger(logging.Testing(tb))}, opts...)
	a, err := queryadapter.NewRegistry(opts...).Get(context.Background(), policy)
	if err != nil {
		tb.Fatalf("query adapter: %v", err)
	}
	return a
}

// GetQueryable returns an async view over an in-memory source holding xs.
func GetQueryable[T any](tb testing.TB, a *queryadapter.Adapter, xs []T) *queryadapter.ViewOf[T] {
	tb.Helper()
	return queryadapter.View(a, source.NewMemory(xs...))
}
