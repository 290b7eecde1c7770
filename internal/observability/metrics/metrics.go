package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bedsvc"

// BedMetrics exposes counters/histograms for allocation and admission flows.
type BedMetrics struct {
	allocationsTotal   *prometheus.CounterVec
	allocationAttempts prometheus.Histogram
	assignConflicts    prometheus.Counter
	admissionOpsTotal  *prometheus.CounterVec
	reconciledTotal    prometheus.Counter
	eventsTotal        *prometheus.CounterVec
}

func NewBedMetrics(reg prometheus.Registerer) *BedMetrics {
	m := &BedMetrics{
		allocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "total",
			Help:      "Bed allocation outcomes",
		}, []string{"bed_type", "outcome"}),
		allocationAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "attempts",
			Help:      "Snapshot/assign attempts per admission request",
			Buckets:   []float64{1, 2, 3, 5, 8},
		}),
		assignConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocation",
			Name:      "assign_conflicts_total",
			Help:      "Conditional bed assigns that lost a race",
		}),
		admissionOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admission",
			Name:      "operations_total",
			Help:      "Admission lifecycle operations",
		}, []string{"operation", "status"}),
		reconciledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconciler",
			Name:      "released_beds_total",
			Help:      "Orphaned occupied beds released by the reconciler",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to a sink",
		}, []string{"sink", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.allocationsTotal, m.allocationAttempts, m.assignConflicts, m.admissionOpsTotal, m.reconciledTotal, m.eventsTotal)
	return m
}

func (m *BedMetrics) ObserveAllocation(bedType, outcome string, attempts int) {
	if m == nil {
		return
	}
	m.allocationsTotal.WithLabelValues(bedType, outcome).Inc()
	m.allocationAttempts.Observe(float64(attempts))
}

func (m *BedMetrics) IncAssignConflict() {
	if m == nil {
		return
	}
	m.assignConflicts.Inc()
}

func (m *BedMetrics) ObserveAdmissionOp(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.admissionOpsTotal.WithLabelValues(operation, status).Inc()
}

func (m *BedMetrics) AddReconciled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciledTotal.Add(float64(n))
}

func (m *BedMetrics) ObserveEvent(sink string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsTotal.WithLabelValues(sink, status).Inc()
}

// HTTPMetrics exposes request counters and latency per route template.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route string, code int, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}
