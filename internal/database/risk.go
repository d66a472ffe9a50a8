package database

import (
	"time"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/m-mizutani/goerr/v2"
)

type RiskFilter struct {
	Status models.Status
	Level  risk.Level
}

func (s *Store) CreateRiskAssessment(a *models.RiskAssessment) error {
	if err := s.DB.Create(a).Error; err != nil {
		return goerr.Wrap(err, "failed to create risk assessment", goerr.V("title", a.Title))
	}
	return nil
}

func (s *Store) GetRiskAssessment(id uint) (*models.RiskAssessment, error) {
	var a models.RiskAssessment
	if err := s.DB.First(&a, id).Error; err != nil {
		return nil, notFound(err, "risk assessment", id)
	}
	return &a, nil
}

// ListRiskAssessments returns the newest assessments first.
func (s *Store) ListRiskAssessments(f RiskFilter) ([]models.RiskAssessment, error) {
	q := s.DB.Order("created_at desc, id desc")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Level != "" {
		q = q.Where("risk_level = ?", f.Level)
	}

	var items []models.RiskAssessment
	if err := q.Find(&items).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list risk assessments")
	}
	return items, nil
}

// UpdateRiskAssessment writes all fields back. Score and level are restamped
// by the model hook.
func (s *Store) UpdateRiskAssessment(a *models.RiskAssessment) error {
	if err := s.DB.Save(a).Error; err != nil {
		return goerr.Wrap(err, "failed to update risk assessment", goerr.V("id", a.ID))
	}
	return nil
}

func (s *Store) SetRiskStatus(id uint, status models.Status, now time.Time) (*models.RiskAssessment, error) {
	a, err := s.GetRiskAssessment(id)
	if err != nil {
		return nil, err
	}
	a.SetStatus(status, now)
	if err := s.UpdateRiskAssessment(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) DeleteRiskAssessment(id uint) (*models.RiskAssessment, error) {
	a, err := s.GetRiskAssessment(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Unscoped().Delete(a).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to delete risk assessment", goerr.V("id", id))
	}
	return a, nil
}

// RiskMatrix returns the 5x5 matrix with the number of unfinished
// assessments in each cell.
func (s *Store) RiskMatrix() (risk.Matrix, error) {
	m := risk.NewMatrix()

	var rows []struct {
		Likelihood  int
		Consequence int
		N           int
	}
	err := s.DB.Model(&models.RiskAssessment{}).
		Select("likelihood, consequence, count(*) as n").
		Where("status <> ?", models.StatusDone).
		Group("likelihood, consequence").
		Scan(&rows).Error
	if err != nil {
		return m, goerr.Wrap(err, "failed to count risk assessments per cell")
	}

	for _, r := range rows {
		if err := m.SetCount(r.Likelihood, r.Consequence, r.N); err != nil {
			s.log.Warn("skipping stored assessment outside the matrix",
				"likelihood", r.Likelihood, "consequence", r.Consequence)
		}
	}
	return m, nil
}

// RecomputeRiskScores restamps score and level on every stored row whose
// derived columns disagree with the calculator. Rows with likelihood or
// consequence outside the scale are logged and counted as skipped.
func (s *Store) RecomputeRiskScores() (updated, skipped int, err error) {
	var items []models.RiskAssessment
	if err := s.DB.Find(&items).Error; err != nil {
		return 0, 0, goerr.Wrap(err, "failed to load risk assessments")
	}

	for i := range items {
		a := &items[i]
		res, err := risk.Compute(a.Likelihood, a.Consequence)
		if err != nil {
			s.log.Warn("risk assessment has invalid inputs", "id", a.ID, "error", err)
			skipped++
			continue
		}
		if res.Score == a.RiskScore && res.Level == a.RiskLevel {
			continue
		}
		if err := s.UpdateRiskAssessment(a); err != nil {
			return updated, skipped, err
		}
		updated++
	}
	return updated, skipped, nil
}
