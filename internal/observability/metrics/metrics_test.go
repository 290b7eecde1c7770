package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBedMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBedMetrics(reg)

	m.ObserveAllocation("ICU", "allocated", 1)
	m.ObserveAllocation("ICU", "allocated", 2)
	m.ObserveAllocation("General", "no_bed", 3)
	m.IncAssignConflict()
	m.ObserveAdmissionOp("discharge", nil)
	m.ObserveAdmissionOp("discharge", errors.New("boom"))
	m.AddReconciled(2)
	m.AddReconciled(0)
	m.ObserveEvent("redis", nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.allocationsTotal.WithLabelValues("ICU", "allocated")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.assignConflicts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.admissionOpsTotal.WithLabelValues("discharge", "error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.reconciledTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.eventsTotal.WithLabelValues("redis", "ok")))
}

func TestHTTPMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.ObserveRequest("GET", "/api/v1/beds", 200, 0.01)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/beds", "200")))
}

func TestMetricsNilSafe(t *testing.T) {
	var bm *BedMetrics
	bm.ObserveAllocation("ICU", "allocated", 1)
	bm.IncAssignConflict()
	bm.ObserveAdmissionOp("create", nil)
	bm.AddReconciled(1)
	bm.ObserveEvent("webhook", nil)

	var hm *HTTPMetrics
	hm.ObserveRequest("GET", "/", 200, 0.1)
}
