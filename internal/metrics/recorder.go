package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Namespace prefixes every metric name.
const Namespace = "fibseq"

// Access outcomes used as label values.
const (
	OutcomeResolved   = "resolved"
	OutcomeParseError = "parse_error"
	OutcomeOutOfRange = "out_of_range"
	OutcomeSuccess    = "success"
	OutcomeOverflow   = "overflow"
	OutcomeCanceled   = "canceled"
	OutcomeError      = "error"
)

// Recorder holds the application's Prometheus collectors. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	terms     *prometheus.CounterVec
	overflows *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	accesses  *prometheus.CounterVec

	activeRequests  prometheus.Gauge
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	handler http.Handler
}

// NewRecorder creates a Recorder backed by a fresh registry that also
// carries the Go runtime collector.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generation_runs_total",
			Help:      "Sequence generations by width and outcome.",
		}, []string{"width", "outcome"}),
		terms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "terms_emitted_total",
			Help:      "Terms emitted by successful generations, seeds included.",
		}, []string{"width"}),
		overflows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "overflows_total",
			Help:      "Generations stopped by arithmetic overflow.",
		}, []string{"width"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of sequence generations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"width"}),
		accesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "index_access_total",
			Help:      "Bounded index lookups by outcome.",
		}, []string{"outcome"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(
		r.runs, r.terms, r.overflows, r.duration, r.accesses,
		r.activeRequests, r.requests, r.requestDuration,
		collectors.NewGoCollector(),
	)
	r.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return r
}

// ObserveGeneration records one generator run. terms is the number of
// emitted terms and is ignored when err is set.
func (r *Recorder) ObserveGeneration(width string, terms int, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := generationOutcome(err)
	r.runs.WithLabelValues(width, outcome).Inc()
	r.duration.WithLabelValues(width).Observe(d.Seconds())
	switch outcome {
	case OutcomeSuccess:
		r.terms.WithLabelValues(width).Add(float64(terms))
	case OutcomeOverflow:
		r.overflows.WithLabelValues(width).Inc()
	}
}

// ObserveAccess records one index lookup.
func (r *Recorder) ObserveAccess(err error) {
	if r == nil {
		return
	}
	r.accesses.WithLabelValues(AccessOutcome(err)).Inc()
}

// IncActiveRequests marks the start of an HTTP request.
func (r *Recorder) IncActiveRequests() {
	if r == nil {
		return
	}
	r.activeRequests.Inc()
}

// DecActiveRequests marks the end of an HTTP request.
func (r *Recorder) DecActiveRequests() {
	if r == nil {
		return
	}
	r.activeRequests.Dec()
}

// ObserveRequest records a served HTTP request.
func (r *Recorder) ObserveRequest(endpoint string, code int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	r.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// AccessOutcome classifies an index lookup error.
func AccessOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeResolved
	case errors.Is(err, apperrors.ErrParse):
		return OutcomeParseError
	case errors.Is(err, apperrors.ErrIndexOutOfRange):
		return OutcomeOutOfRange
	}
	return OutcomeError
}

func generationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, apperrors.ErrArithmeticOverflow):
		return OutcomeOverflow
	case apperrors.IsContextError(err):
		return OutcomeCanceled
	}
	return OutcomeError
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (r *Recorder) WritePrometheus(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// WriteTextfile atomically writes the registry to path, for collection by
// the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return apperrors.WrapError(err, "writing metrics to %s", path)
	}
	return nil
}
