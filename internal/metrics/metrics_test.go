package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.RiskAssessmentSaved(risk.LevelHigh)
	m.RiskAssessmentSaved(risk.LevelHigh)
	m.IncidentReported(models.CategoryHealth)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RiskSaved.WithLabelValues("high")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RiskSaved.WithLabelValues("low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IncidentsReported.WithLabelValues("health")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RiskAssessmentSaved(risk.LevelCritical)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hms_risk_assessments_saved_total{level="critical"} 1`)
}
