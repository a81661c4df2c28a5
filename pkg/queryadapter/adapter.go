// Package queryadapter turns synchronous sources into asynchronous queryables.
//
// An Adapter is configured with a Policy that decides
// whether its views may be enumerated synchronously,
// and whether the source may be iterated on the consumer's goroutine.
//
//	adapter, err := queryadapter.Get(ctx, queryadapter.DisallowAll)
//	view := queryadapter.View(adapter, source.NewMemory(1, 2, 3))
//	l, err := asyncq.ToLookup(ctx, view, func(p int) int { return p + 3 })
package queryadapter

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	uuid "github.com/satori/go.uuid"

	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/option"
)

const tracerName = "go.llib.dev/asyncquery/pkg/queryadapter"

type Config struct {
	Logger         *logging.Logger
	Observer       Observer
	TracerProvider trace.TracerProvider
	// Concurrency is handed to the views' queryables, see asyncq.Concurrency.
	Concurrency int
	// Buffer is the channel buffer between a background iteration and its consumer.
	Buffer int
}

func (c *Config) Init() {
	c.Concurrency = 1
}

func (c Config) Configure(t *Config) {
	if c.Logger != nil {
		t.Logger = c.Logger
	}
	if c.Observer != nil {
		t.Observer = c.Observer
	}
	if c.TracerProvider != nil {
		t.TracerProvider = c.TracerProvider
	}
	if 0 < c.Concurrency {
		t.Concurrency = c.Concurrency
	}
	if 0 < c.Buffer {
		t.Buffer = c.Buffer
	}
}

type Option option.Option[Config]

func WithLogger(l *logging.Logger) Option { return Config{Logger: l} }

func WithObserver(o Observer) Option { return Config{Observer: o} }

func WithTracerProvider(tp trace.TracerProvider) Option { return Config{TracerProvider: tp} }

func WithConcurrency(n int) Option { return Config{Concurrency: n} }

func WithBuffer(n int) Option { return Config{Buffer: n} }

// Adapter produces async views over synchronous sources.
// An Adapter is safe for concurrent use.
type Adapter struct {
	ID     uuid.UUID
	policy Policy
	config Config
	tracer trace.Tracer
}

// New makes an adapter with the given policy.
// Unknown policy bits are dropped.
func New(policy Policy, opts ...Option) *Adapter {
	c := option.Use[Config](opts)
	tp := c.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Adapter{
		ID:     uuid.NewV4(),
		policy: policy & AllowAll,
		config: c,
		tracer: tp.Tracer(tracerName),
	}
}

func (a *Adapter) Policy() Policy { return a.policy }

func (a *Adapter) Config() Config { return a.config }
