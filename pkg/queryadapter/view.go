package queryadapter

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"go.llib.dev/asyncquery/pkg/asyncq"
	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/iterkit"
	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/source"
)

const ErrSyncExecutionDisallowed errorkit.Error = "synchronous enumeration is not allowed by the query adapter policy"

// View makes an async queryable over the source.
func View[T any](a *Adapter, src source.Source[T]) *ViewOf[T] {
	return &ViewOf[T]{
		adapter:     a,
		source:      src,
		elementType: fmt.Sprintf("%T", *new(T)),
	}
}

// ViewOf is an asynchronous view of a synchronous source.
// It implements asyncq.Queryable and asyncq.Configurable.
type ViewOf[T any] struct {
	adapter     *Adapter
	source      source.Source[T]
	elementType string
}

var _ asyncq.Queryable[int] = (*ViewOf[int])(nil)
var _ asyncq.Configurable = (*ViewOf[int])(nil)

func (v *ViewOf[T]) QueryConfig() asyncq.Config {
	if v == nil || v.adapter == nil {
		return asyncq.ConfigOf(nil)
	}
	return asyncq.Config{Concurrency: v.adapter.config.Concurrency}
}

func (v *ViewOf[T]) Adapter() *Adapter { return v.adapter }

// Sync returns the source for synchronous enumeration,
// when the adapter's policy allows it.
func (v *ViewOf[T]) Sync() (iterkit.ErrSeq[T], error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	if !v.adapter.policy.Has(AllowSyncEnumeration) {
		return nil, ErrSyncExecutionDisallowed
	}
	return v.source.All(), nil
}

// Iterate streams the source's elements.
// Unless the policy allows inline execution,
// the source is iterated on a background goroutine that stops when the iteration ends.
func (v *ViewOf[T]) Iterate(ctx context.Context) iterkit.ErrSeq[T] {
	if err := v.validate(); err != nil {
		return iterkit.Error[T](err)
	}
	return func(yield func(T, error) bool) {
		var (
			a       = v.adapter
			started = time.Now()
			count   int
			iterErr error
		)
		ctx, span := a.tracer.Start(ctx, "asyncquery.view.iterate", trace.WithAttributes(
			attribute.String("asyncquery.adapter.id", a.ID.String()),
			attribute.String("asyncquery.policy", a.policy.String()),
			attribute.String("asyncquery.element_type", v.elementType),
		))
		defer func() { v.finish(ctx, span, count, time.Since(started), iterErr) }()

		var elements iterkit.ErrSeq[T]
		if a.policy.Has(AllowInlineExecution) {
			elements = iterkit.WithContext(ctx, v.source.All())
		} else {
			elements = iterkit.Background(ctx, v.source.All(), a.config.Buffer)
		}
		for e, err := range elements {
			if err != nil {
				iterErr = errorkit.Merge(iterErr, err)
			} else {
				count++
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

func (v *ViewOf[T]) finish(ctx context.Context, span trace.Span, count int, d time.Duration, err error) {
	a := v.adapter
	defer span.End()
	span.SetAttributes(attribute.Int("asyncquery.elements", count))
	details := []logging.Detail{
		logging.Field("adapter_id", a.ID.String()),
		logging.Field("element_type", v.elementType),
		logging.Field("elements", count),
		logging.Field("duration_ms", d.Milliseconds()),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.config.Logger.Error(ctx, "view iteration failed", append(details, logging.ErrField(err))...)
	} else {
		span.SetStatus(codes.Ok, "")
		a.config.Logger.Debug(ctx, "view iterated", details...)
	}
	a.observer().ObserveIteration(v.elementType, a.policy, count, d, err)
}

func (v *ViewOf[T]) validate() error {
	if v == nil || v.adapter == nil {
		return errorkit.ArgumentNil("adapter")
	}
	if v.source == nil {
		return errorkit.ArgumentNil("source")
	}
	return nil
}

func (a *Adapter) observer() Observer {
	if a.config.Observer == nil {
		return nopObserver{}
	}
	return a.config.Observer
}
