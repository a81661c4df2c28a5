package queryadapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

//go:generate mockgen -destination=../../internal/testkit/mock_observer.go -package=testkit go.llib.dev/asyncquery/pkg/queryadapter Observer

// Observer is notified when a view iteration ends.
type Observer interface {
	ObserveIteration(elementType string, policy Policy, elements int, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveIteration(string, Policy, int, time.Duration, error) {}

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// PrometheusObserver records view iterations as prometheus metrics.
type PrometheusObserver struct {
	iterations *prometheus.CounterVec
	elements   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusObserver registers the view metrics with reg.
// A nil reg means prometheus.DefaultRegisterer.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asyncquery_view_iterations_total",
			Help: "Number of finished view iterations",
		}, []string{"element_type", "policy", "outcome"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "asyncquery_view_elements_total",
			Help: "Number of elements yielded by views",
		}, []string{"element_type", "policy"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asyncquery_view_iteration_duration_seconds",
			Help:    "Time spent iterating a view",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"element_type", "policy"}),
	}
	for _, c := range []prometheus.Collector{o.iterations, o.elements, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) ObserveIteration(elementType string, policy Policy, elements int, duration time.Duration, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	o.iterations.WithLabelValues(elementType, policy.String(), outcome).Inc()
	o.elements.WithLabelValues(elementType, policy.String()).Add(float64(elements))
	o.duration.WithLabelValues(elementType, policy.String()).Observe(duration.Seconds())
}
