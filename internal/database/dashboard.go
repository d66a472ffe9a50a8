package database

import (
	"time"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/m-mizutani/goerr/v2"
)

type Summary struct {
	OpenRisks           int
	OpenByLevel         map[risk.Level]int
	OverdueRisks        []models.RiskAssessment
	OpenIncidents       int
	IncidentsByCategory map[models.IncidentCategory]int
	RecentIncidents     []models.Incident
	GeneratedAt         time.Time
}

func (s *Store) DashboardSummary(now time.Time) (*Summary, error) {
	sum := &Summary{
		OpenByLevel:         make(map[risk.Level]int, len(risk.Levels)),
		IncidentsByCategory: make(map[models.IncidentCategory]int, len(models.IncidentCategories)),
		GeneratedAt:         now,
	}

	var levels []struct {
		RiskLevel risk.Level
		N         int
	}
	err := s.DB.Model(&models.RiskAssessment{}).
		Select("risk_level, count(*) as n").
		Where("status <> ?", models.StatusDone).
		Group("risk_level").
		Scan(&levels).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count open risks")
	}
	for _, l := range levels {
		sum.OpenByLevel[l.RiskLevel] = l.N
		sum.OpenRisks += l.N
	}

	err = s.DB.
		Where("status <> ? AND deadline IS NOT NULL AND deadline < ?", models.StatusDone, now).
		Order("deadline asc").
		Find(&sum.OverdueRisks).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load overdue risks")
	}

	var cats []struct {
		Category models.IncidentCategory
		N        int
	}
	err = s.DB.Model(&models.Incident{}).
		Select("category, count(*) as n").
		Where("status <> ?", models.StatusDone).
		Group("category").
		Scan(&cats).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count open incidents")
	}
	for _, c := range cats {
		sum.IncidentsByCategory[c.Category] = c.N
		sum.OpenIncidents += c.N
	}

	err = s.DB.Order("created_at desc, id desc").Limit(5).Find(&sum.RecentIncidents).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load recent incidents")
	}

	return sum, nil
}
