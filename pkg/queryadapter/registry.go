package queryadapter

import (
	"context"

	"github.com/llxisdsh/pb"
)

// DefaultRegistry is used by Get.
var DefaultRegistry = NewRegistry()

// Registry hands out one shared adapter per policy.
type Registry struct {
	opts     []Option
	adapters pb.MapOf[Policy, *Adapter]
}

// NewRegistry makes a registry whose adapters are created with opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{opts: opts}
}

// Get returns the registry's adapter for the policy, creating it on first use.
func (r *Registry) Get(ctx context.Context, policy Policy) (*Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !policy.valid() {
		return nil, ErrInvalidPolicy.F("%08b", uint8(policy))
	}
	a, _ := r.adapters.LoadOrStoreFn(policy, func() *Adapter {
		return New(policy, r.opts...)
	})
	return a, nil
}

// Len is the number of adapters created so far.
func (r *Registry) Len() int {
	return r.adapters.Size()
}

// Get returns the shared adapter of the policy from DefaultRegistry.
// When options are given, a new adapter is made instead,
// since the shared one is already configured.
func Get(ctx context.Context, policy Policy, opts ...Option) (*Adapter, error) {
	if len(opts) == 0 {
		return DefaultRegistry.Get(ctx, policy)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !policy.valid() {
		return nil, ErrInvalidPolicy.F("%08b", uint8(policy))
	}
	return New(policy, opts...), nil
}
