package models

import (
	"testing"
	"time"

	"hms-system/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskAssessment_Recompute(t *testing.T) {
	a := RiskAssessment{Title: "Glatt gulv", Likelihood: 4, Consequence: 3}
	require.NoError(t, a.Recompute())
	assert.Equal(t, 12, a.RiskScore)
	assert.Equal(t, risk.LevelHigh, a.RiskLevel)
	assert.Equal(t, StatusOpen, a.Status)

	a.Likelihood = 1
	require.NoError(t, a.Recompute())
	assert.Equal(t, 3, a.RiskScore)
	assert.Equal(t, risk.LevelLow, a.RiskLevel)
}

func TestRiskAssessment_RecomputeRejectsInvalid(t *testing.T) {
	a := RiskAssessment{Likelihood: 6, Consequence: 1, RiskScore: 6, RiskLevel: risk.LevelMedium}
	err := a.Recompute()
	assert.ErrorIs(t, err, risk.ErrInvalidArgument)
	// stale derived values are left for the caller to discard
	assert.Equal(t, 6, a.RiskScore)
}

func TestRiskAssessment_SetStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := RiskAssessment{Status: StatusOpen}

	a.SetStatus(StatusDone, now)
	require.NotNil(t, a.CompletedAt)
	assert.Equal(t, now, *a.CompletedAt)

	a.SetStatus(StatusInProgress, now)
	assert.Nil(t, a.CompletedAt)
}

func TestRiskAssessment_Overdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, RiskAssessment{Status: StatusOpen, Deadline: &past}.Overdue(now))
	assert.False(t, RiskAssessment{Status: StatusDone, Deadline: &past}.Overdue(now))
	assert.False(t, RiskAssessment{Status: StatusOpen, Deadline: &future}.Overdue(now))
	assert.False(t, RiskAssessment{Status: StatusOpen}.Overdue(now))
}

func TestEnums(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("closed").Valid())
	assert.True(t, CategoryEnvironment.Valid())
	assert.False(t, IncidentCategory("fire").Valid())
	assert.True(t, SeverityHigh.Valid())
	assert.Equal(t, "Miljø", CategoryEnvironment.Label())
}
