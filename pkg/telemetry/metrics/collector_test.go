package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"voidxp/gateway/pkg/config"
)

func newTestCollector() *Collector {
	return NewCollector(config.MetricsConfig{Namespace: "voidxp"})
}

func TestRecordRequest(t *testing.T) {
	c := newTestCollector()

	c.RecordRequest("chat", "openai", "success", 150*time.Millisecond)
	c.RecordRequest("chat", "openai", "success", 50*time.Millisecond)
	c.RecordRequest("fim", "mistral", "error", 10*time.Millisecond)

	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("chat", "openai", "success")); got != 2 {
		t.Errorf("requests_total{chat,openai,success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("fim", "mistral", "error")); got != 1 {
		t.Errorf("requests_total{fim,mistral,error} = %v, want 1", got)
	}
}

func TestRecordGuestQuota(t *testing.T) {
	c := newTestCollector()

	c.RecordGuestQuota("ok")
	c.RecordGuestQuota("ok")
	c.RecordGuestQuota("limit_exceeded")

	if got := testutil.ToFloat64(c.guestQuotaTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("guest_quota_decisions_total{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.guestQuotaTotal.WithLabelValues("limit_exceeded")); got != 1 {
		t.Errorf("guest_quota_decisions_total{limit_exceeded} = %v, want 1", got)
	}
}

func TestSetGuestTrackedKeys(t *testing.T) {
	c := newTestCollector()
	c.SetGuestTrackedKeys(42)
	if got := testutil.ToFloat64(c.guestQuotaRemaining); got != 42 {
		t.Errorf("guest_tracked_keys = %v, want 42", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	c := newTestCollector()
	c.RecordSearch("tavily", "hit")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "voidxp_search_requests_total") {
		t.Error("exposition missing voidxp_search_requests_total")
	}
}
