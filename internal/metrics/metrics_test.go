package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveLogin("success")
	m.ObserveLogin("failed")
	m.ObserveLogin("failed")
	m.IncRoundsOpened()
	m.ObserveRoundClosed(2)
	m.IncDrawsSubmitted()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsClosed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Winners))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DrawsSubmitted))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLogin("success")
		m.IncRoundsOpened()
		m.ObserveRoundClosed(1)
		m.IncDrawsSubmitted()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncRoundsOpened()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lottery_rounds_opened_total 1")
}
