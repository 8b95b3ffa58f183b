package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/scoring"
)

func TestHandlerServesRegisteredCollectors(t *testing.T) {
	m := New()
	m.ObserveRun(true, 1.5, 0.8, 2, scoring.Breakdown{"correlation": 10, "offHours": 5})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "schedule_runs_total"))
	assert.True(t, strings.Contains(body, "schedule_score_component"))
}

func TestNilMetricsHandlerIsSafe(t *testing.T) {
	var m *Metrics
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	assert.NotPanics(t, func() {
		m.ObserveRun(false, 0, 0, 0, scoring.Breakdown{})
	})
}
