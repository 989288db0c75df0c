package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc := NewMetricsCollector(reg)

	handler := mc.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodGet, "/extract_url", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected code %d", rr.Code)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var count float64
	for _, mf := range mfs {
		if mf.GetName() == "crawler_requests_total" {
			for _, m := range mf.GetMetric() {
				count += m.GetCounter().GetValue()
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded request, got %v", count)
	}
}

func TestRecordCostAccumulatesPerService(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc := NewMetricsCollector(reg)

	mc.RecordCost("serpapi", 5)
	mc.RecordCost("serpapi", 3)
	mc.RecordCost("ai", 10)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	totals := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "crawler_cost_cents_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "service" {
					totals[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	if totals["serpapi"] != 8 {
		t.Errorf("serpapi total = %v, want 8", totals["serpapi"])
	}
	if totals["ai"] != 10 {
		t.Errorf("ai total = %v, want 10", totals["ai"])
	}
}
