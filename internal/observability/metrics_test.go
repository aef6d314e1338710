package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobportal/jobportal-client/internal/slice"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsRecordSliceTransitions(t *testing.T) {
	metrics := NewMetrics()
	metrics.Transition("profile", slice.Pending)
	metrics.Transition("profile", slice.Fulfilled)
	metrics.Discarded("profile")
	metrics.SessionEvent("authenticated")

	body := scrape(t, metrics)
	for _, want := range []string{
		`portal_slice_transitions_total{slice="profile",status="pending"} 1`,
		`portal_slice_transitions_total{slice="profile",status="fulfilled"} 1`,
		`portal_slice_stale_completions_total{slice="profile"} 1`,
		`portal_session_events_total{event="authenticated"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in body, got: %s", want, body)
		}
	}
}

func TestMetricsTransportRecordsRequest(t *testing.T) {
	metrics := NewMetrics()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := &http.Client{Transport: metrics.Transport(nil)}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	body := scrape(t, metrics)
	if !strings.Contains(body, `portal_api_requests_total{code="418",method="GET"} 1`) {
		t.Fatalf("expected request to be recorded, got: %s", body)
	}
	if !strings.Contains(body, `portal_api_request_duration_seconds_bucket{method="GET"`) {
		t.Fatalf("expected duration histogram, got: %s", body)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.Transition("profile", slice.Idle)
	metrics.SessionEvent("logout")
	if metrics.Transport(http.DefaultTransport) != http.DefaultTransport {
		t.Fatalf("nil metrics must not wrap the transport")
	}
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}
