// Package metrics instruments generation cycles and transport calls with
// Prometheus collectors held in a private registry. The registry can be
// served over HTTP or written to a node_exporter textfile on exit.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
)

const namespace = "txt2pptx"

// Collector implements orchestration.Observer and records transport calls.
type Collector struct {
	registry *prometheus.Registry

	submissions *prometheus.CounterVec
	active      prometheus.Gauge
	cycles      *prometheus.HistogramVec
	requests    *prometheus.CounterVec
	latency     prometheus.Histogram
}

// NewCollector creates a collector with its own registry, including the Go
// runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions by result: started, rejected or busy.",
		}, []string{"result", "field"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_generations",
			Help:      "Generations currently in flight.",
		}),
		cycles: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a generation cycle by terminal state.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"state"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_requests_total",
			Help:      "Transport calls by outcome class.",
		}, []string{"class"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transport_request_duration_seconds",
			Help:      "Latency of transport calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
		}),
	}
	c.registry.MustRegister(
		c.submissions, c.active, c.cycles, c.requests, c.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Rejected counts a submission refused by validation.
func (c *Collector) Rejected(field string) {
	c.submissions.WithLabelValues("rejected", field).Inc()
}

// Busy counts a submission refused because a generation was in flight.
func (c *Collector) Busy() {
	c.submissions.WithLabelValues("busy", "").Inc()
}

// Started counts a submission that started a cycle.
func (c *Collector) Started() {
	c.submissions.WithLabelValues("started", "").Inc()
	c.active.Inc()
}

// Finished records a settled cycle.
func (c *Collector) Finished(state orchestration.State, elapsed time.Duration) {
	c.active.Dec()
	c.cycles.WithLabelValues(state.String()).Observe(elapsed.Seconds())
}

// InstrumentTransport wraps next so every call is counted and timed.
func (c *Collector) InstrumentTransport(next orchestration.Transport) orchestration.Transport {
	return orchestration.TransportFunc(func(ctx context.Context, req generation.Request) (generation.Outcome, error) {
		start := time.Now()
		out, err := next.Send(ctx, req)
		c.latency.Observe(time.Since(start).Seconds())
		c.requests.WithLabelValues(Classify(err)).Inc()
		return out, err
	})
}

// Classify names the outcome class of a transport error.
func Classify(err error) string {
	var (
		netErr   apperrors.NetworkError
		protoErr apperrors.ProtocolError
		decErr   apperrors.DecodeError
	)
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsContextError(err):
		return "canceled"
	case errors.As(err, &protoErr):
		return "protocol"
	case errors.As(err, &decErr):
		return "decode"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry to path for the node_exporter textfile
// collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return apperrors.WrapError(err, "write metrics to %s", path)
	}
	return nil
}
