package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBulkCounters(t *testing.T) {
	r := New()
	r.Bulk("listing", "approve", 3)
	r.Bulk("listing", "approve", 2)

	if got := testutil.ToFloat64(r.BulkActions.WithLabelValues("listing", "approve")); got != 2 {
		t.Fatalf("bulk actions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.BulkAffected.WithLabelValues("listing", "approve")); got != 5 {
		t.Fatalf("bulk affected = %v, want 5", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Bulk("user", "suspend", 1)
	r.Export("user", "csv")
	r.PersistFailed()
	r.Request("GET", "/api/health", "200", time.Millisecond)
}

func TestRequestCounter(t *testing.T) {
	r := New()
	r.Request("GET", "/api/admin/listings/:id", "404", 2*time.Millisecond)

	if got := testutil.ToFloat64(r.HTTPRequests.WithLabelValues("GET", "/api/admin/listings/:id", "404")); got != 1 {
		t.Fatalf("requests = %v, want 1", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	r := New()
	r.Export("listing", "xlsx")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `blackpiston_exports_total{format="xlsx",resource="listing"} 1`) {
		t.Fatalf("export counter missing from output")
	}
}
