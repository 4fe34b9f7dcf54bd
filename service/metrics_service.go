package service

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskit/registrar-core/models"
)

// MetricsService encapsulates Prometheus instrumentation for the registration
// core and provides lightweight snapshots for in-process consumers. All
// methods are safe on a nil receiver so instrumentation stays optional.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	attempts         *prometheus.CounterVec
	decisionDuration prometheus.Histogram
	withdrawals      *prometheus.CounterVec
	courses          prometheus.Gauge
	enrollments      prometheus.Gauge

	attemptCount       uint64
	structuralCount    uint64
	withdrawalCount    uint64
	decisionTotalNanos uint64

	mu       sync.Mutex
	outcomes map[string]uint64
}

// NewMetricsService registers the core collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registration_attempts_total",
		Help: "Registration attempts by result (outcome or structural error code)",
	}, []string{"result"})

	decisionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "registration_decision_duration_seconds",
		Help:    "Duration of registration decisions",
		Buckets: prometheus.DefBuckets,
	})

	withdrawals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawals_total",
		Help: "Withdrawal requests by result",
	}, []string{"result"})

	courses := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "courses_total",
		Help: "Number of courses in the directory",
	})

	enrollments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_enrollments",
		Help: "Total seats currently taken across all courses",
	})

	registry.MustRegister(attempts, decisionDuration, withdrawals, courses, enrollments)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		attempts:         attempts,
		decisionDuration: decisionDuration,
		withdrawals:      withdrawals,
		courses:          courses,
		enrollments:      enrollments,
		outcomes:         make(map[string]uint64),
	}
}

// Handler exposes the Prometheus scrape handler for whatever front end exists.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRegistration records a registration attempt. The result is either a
// models.RegistrationOutcome value or a structural error code.
func (m *MetricsService) ObserveRegistration(result string, latency time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(result).Inc()
	m.decisionDuration.Observe(latency.Seconds())
	if result == string(models.OutcomeSuccess) {
		m.enrollments.Inc()
	}

	atomic.AddUint64(&m.attemptCount, 1)
	atomic.AddUint64(&m.decisionTotalNanos, uint64(latency.Nanoseconds()))
	if !isOutcome(result) {
		atomic.AddUint64(&m.structuralCount, 1)
	}

	m.mu.Lock()
	m.outcomes[result]++
	m.mu.Unlock()
}

// ObserveWithdrawal records a withdrawal request and frees a seat on the
// enrollment gauge when the student was actually removed.
func (m *MetricsService) ObserveWithdrawal(removed bool) {
	if m == nil {
		return
	}
	result := models.WithdrawResultNotEnrolled
	if removed {
		result = models.WithdrawResultRemoved
		m.enrollments.Dec()
	}
	m.withdrawals.WithLabelValues(result).Inc()
	atomic.AddUint64(&m.withdrawalCount, 1)
}

// IncCourses bumps the course gauge after a successful AddCourse.
func (m *MetricsService) IncCourses() {
	if m == nil {
		return
	}
	m.courses.Inc()
}

// Snapshot returns aggregated counters for in-process consumers.
func (m *MetricsService) Snapshot() models.RegistrationStats {
	if m == nil {
		return models.RegistrationStats{}
	}
	attempts := atomic.LoadUint64(&m.attemptCount)
	totalNanos := atomic.LoadUint64(&m.decisionTotalNanos)

	var avgMs float64
	if attempts > 0 {
		avgMs = float64(totalNanos) / float64(attempts) / float64(time.Millisecond)
	}

	m.mu.Lock()
	outcomes := make(map[string]uint64, len(m.outcomes))
	for k, v := range m.outcomes {
		outcomes[k] = v
	}
	m.mu.Unlock()

	return models.RegistrationStats{
		AttemptsTotal:      attempts,
		Outcomes:           outcomes,
		StructuralFailures: atomic.LoadUint64(&m.structuralCount),
		Withdrawals:        atomic.LoadUint64(&m.withdrawalCount),
		AverageDecisionMs:  avgMs,
		GeneratedAt:        time.Now().UTC(),
	}
}

func isOutcome(result string) bool {
	switch models.RegistrationOutcome(result) {
	case models.OutcomeSuccess, models.OutcomeCourseFull, models.OutcomePrereqNotMet,
		models.OutcomeTimeConflict, models.OutcomeAlreadyEnrolled, models.OutcomeRegistrationClosed:
		return true
	}
	return false
}
