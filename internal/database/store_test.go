package database

import (
	"path/filepath"
	"testing"
	"time"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "hms.db"), nil)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newAssessment(title string, l, c int) *models.RiskAssessment {
	return &models.RiskAssessment{Title: title, Area: "Kjøkken", Likelihood: l, Consequence: c}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn", nil)
	assert.Error(t, err)
}

func TestCreateRiskAssessment_StampsScore(t *testing.T) {
	s := setupTestStore(t)

	a := newAssessment("Glatt gulv", 4, 4)
	require.NoError(t, s.CreateRiskAssessment(a))
	assert.NotZero(t, a.ID)

	got, err := s.GetRiskAssessment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, got.RiskScore)
	assert.Equal(t, risk.LevelCritical, got.RiskLevel)
	assert.Equal(t, models.StatusOpen, got.Status)
}

func TestCreateRiskAssessment_RejectsInvalidInputs(t *testing.T) {
	s := setupTestStore(t)

	err := s.CreateRiskAssessment(newAssessment("Ugyldig", 0, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, risk.ErrInvalidArgument)

	items, err := s.ListRiskAssessments(RiskFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateRiskAssessment_Recomputes(t *testing.T) {
	s := setupTestStore(t)

	a := newAssessment("Kniv", 2, 2)
	require.NoError(t, s.CreateRiskAssessment(a))

	a.Likelihood = 5
	a.Consequence = 3
	// a hand-set level must not survive the save
	a.RiskLevel = risk.LevelLow
	require.NoError(t, s.UpdateRiskAssessment(a))

	got, err := s.GetRiskAssessment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.RiskScore)
	assert.Equal(t, risk.LevelHigh, got.RiskLevel)
}

func TestListRiskAssessments_NewestFirstAndFilters(t *testing.T) {
	s := setupTestStore(t)

	first := newAssessment("Første", 1, 1)
	second := newAssessment("Andre", 5, 5)
	require.NoError(t, s.CreateRiskAssessment(first))
	require.NoError(t, s.CreateRiskAssessment(second))

	items, err := s.ListRiskAssessments(RiskFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	items, err = s.ListRiskAssessments(RiskFilter{Level: risk.LevelCritical})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Andre", items[0].Title)

	_, err = s.SetRiskStatus(first.ID, models.StatusDone, time.Now())
	require.NoError(t, err)
	items, err = s.ListRiskAssessments(RiskFilter{Status: models.StatusDone})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
	assert.NotNil(t, items[0].CompletedAt)
}

func TestDeleteRiskAssessment(t *testing.T) {
	s := setupTestStore(t)

	a := newAssessment("Slett meg", 2, 3)
	require.NoError(t, s.CreateRiskAssessment(a))

	deleted, err := s.DeleteRiskAssessment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Slett meg", deleted.Title)

	_, err = s.GetRiskAssessment(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.DeleteRiskAssessment(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRiskMatrix_CountsOpenAssessments(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.CreateRiskAssessment(newAssessment("A", 3, 4)))
	require.NoError(t, s.CreateRiskAssessment(newAssessment("B", 3, 4)))
	done := newAssessment("C", 3, 4)
	require.NoError(t, s.CreateRiskAssessment(done))
	_, err := s.SetRiskStatus(done.ID, models.StatusDone, time.Now())
	require.NoError(t, err)

	m, err := s.RiskMatrix()
	require.NoError(t, err)
	cell, err := m.Cell(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, cell.Count)
	assert.Equal(t, 12, cell.Score)
}

func TestRecomputeRiskScores(t *testing.T) {
	s := setupTestStore(t)

	a := newAssessment("Gammel rad", 4, 4)
	require.NoError(t, s.CreateRiskAssessment(a))

	// simulate a row written by an older version with a diverging level
	require.NoError(t, s.DB.Exec("UPDATE risk_assessments SET risk_score = 9, risk_level = 'medium' WHERE id = ?", a.ID).Error)
	require.NoError(t, s.DB.Exec("INSERT INTO risk_assessments (title, likelihood, consequence, risk_score, risk_level, status) VALUES ('Ugyldig', 7, 1, 7, 'medium', 'open')").Error)

	updated, skipped, err := s.RecomputeRiskScores()
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, skipped)

	got, err := s.GetRiskAssessment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, got.RiskScore)
	assert.Equal(t, risk.LevelCritical, got.RiskLevel)
}

func TestIncidents(t *testing.T) {
	s := setupTestStore(t)

	inc := &models.Incident{Title: "Brannalarm", Category: models.CategorySafety, Severity: models.SeverityHigh}
	require.NoError(t, s.CreateIncident(inc))
	assert.Equal(t, models.StatusOpen, inc.Status)

	other := &models.Incident{Title: "Oljesøl", Category: models.CategoryEnvironment, Severity: models.SeverityLow}
	require.NoError(t, s.CreateIncident(other))

	items, err := s.ListIncidents(IncidentFilter{Category: models.CategorySafety})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inc.ID, items[0].ID)

	updated, err := s.SetIncidentStatus(inc.ID, models.StatusDone, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	_, err = s.DeleteIncident(other.ID)
	require.NoError(t, err)
	_, err = s.GetIncident(other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuditLog(t *testing.T) {
	s := setupTestStore(t)

	s.CreateAuditLog("", "risk_assessment", 7, "create", "Opprettet")
	s.CreateAuditLog("kari", "risk_assessment", 7, "update", "Endret")
	s.CreateAuditLog("kari", "incident", 1, "create", "Avvik")

	logs, err := s.ListAuditLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "incident", logs[0].Entity)

	history, err := s.EntityHistory("risk_assessment", 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "anonymous", history[0].Actor)
	assert.Equal(t, "update", history[1].Action)
}

func TestDashboardSummary(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)

	late := newAssessment("Forfalt", 2, 3)
	late.Deadline = &past
	require.NoError(t, s.CreateRiskAssessment(late))
	require.NoError(t, s.CreateRiskAssessment(newAssessment("Kritisk", 5, 4)))
	closed := newAssessment("Lukket", 1, 1)
	require.NoError(t, s.CreateRiskAssessment(closed))
	_, err := s.SetRiskStatus(closed.ID, models.StatusDone, now)
	require.NoError(t, err)

	require.NoError(t, s.CreateIncident(&models.Incident{Title: "Søl", Category: models.CategoryHealth, Severity: models.SeverityLow}))

	sum, err := s.DashboardSummary(now)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.OpenRisks)
	assert.Equal(t, 1, sum.OpenByLevel[risk.LevelMedium])
	assert.Equal(t, 1, sum.OpenByLevel[risk.LevelCritical])
	assert.Equal(t, 0, sum.OpenByLevel[risk.LevelLow])
	require.Len(t, sum.OverdueRisks, 1)
	assert.Equal(t, "Forfalt", sum.OverdueRisks[0].Title)
	assert.Equal(t, 1, sum.OpenIncidents)
	assert.Equal(t, 1, sum.IncidentsByCategory[models.CategoryHealth])
	assert.Len(t, sum.RecentIncidents, 1)
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()

	n, err := s.SeedDemoData(now)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.SeedDemoData(now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
