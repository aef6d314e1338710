package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobportal/jobportal-client/internal/slice"
)

// Metrics collects Prometheus metrics for the portal client.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	discarded       *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
}

// NewMetrics initialises a private registry and the client metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_api_requests_total",
		Help: "API requests issued by the client by method and status code.",
	}, []string{"method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_api_request_duration_seconds",
		Help:    "Duration of API requests issued by the client.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_slice_transitions_total",
		Help: "Resource slice transitions by slice and status.",
	}, []string{"slice", "status"})
	discarded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_slice_stale_completions_total",
		Help: "Fetch completions dropped because a newer fetch was issued.",
	}, []string{"slice"})
	sessionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_session_events_total",
		Help: "Session lifecycle events.",
	}, []string{"event"})
	registry.MustRegister(requests, duration, transitions, discarded, sessionEvents)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		transitions:     transitions,
		discarded:       discarded,
		sessionEvents:   sessionEvents,
	}
}

// Handler returns the http.Handler for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Transition implements slice.Recorder.
func (m *Metrics) Transition(name string, status slice.Status) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(name, status.String()).Inc()
}

// Discarded implements slice.Recorder.
func (m *Metrics) Discarded(name string) {
	if m == nil {
		return
	}
	m.discarded.WithLabelValues(name).Inc()
}

// SessionEvent counts a session lifecycle event.
func (m *Metrics) SessionEvent(event string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(event).Inc()
}

// Transport wraps next so every outgoing API request is measured.
func (m *Metrics) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if m == nil {
		return next
	}
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)
		code := "error"
		if err == nil {
			code = strconv.Itoa(resp.StatusCode)
		}
		m.requestsTotal.WithLabelValues(req.Method, code).Inc()
		m.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
		return resp, err
	})
}

// Registerer exposes the registry for custom metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
