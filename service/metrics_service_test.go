package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/registrar-core/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveRegistration(string(models.OutcomeSuccess), 2*time.Millisecond)
	m.ObserveRegistration(string(models.OutcomeRegistrationClosed), 4*time.Millisecond)
	m.ObserveRegistration("UNKNOWN_COURSE", 1*time.Millisecond)
	m.ObserveWithdrawal(true)
	m.ObserveWithdrawal(false)
	m.IncCourses()

	stats := m.Snapshot()
	assert.Equal(t, uint64(3), stats.AttemptsTotal)
	assert.Equal(t, uint64(1), stats.Outcomes[string(models.OutcomeSuccess)])
	assert.Equal(t, uint64(1), stats.Outcomes[string(models.OutcomeRegistrationClosed)])
	assert.Equal(t, uint64(1), stats.Outcomes["UNKNOWN_COURSE"])
	assert.Equal(t, uint64(1), stats.StructuralFailures)
	assert.Equal(t, uint64(2), stats.Withdrawals)
	assert.InDelta(t, 2.33, stats.AverageDecisionMs, 0.1)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveRegistration(string(models.OutcomeSuccess), time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "registration_attempts_total")
	assert.Contains(t, body, "registration_decision_duration_seconds")
}

func TestMetricsServiceNilReceiver(t *testing.T) {
	var m *MetricsService

	assert.NotPanics(t, func() {
		m.ObserveRegistration(string(models.OutcomeSuccess), time.Millisecond)
		m.ObserveWithdrawal(true)
		m.IncCourses()
	})

	stats := m.Snapshot()
	assert.Zero(t, stats.AttemptsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
