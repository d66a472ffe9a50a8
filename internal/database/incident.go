package database

import (
	"time"

	"hms-system/internal/models"

	"github.com/m-mizutani/goerr/v2"
)

type IncidentFilter struct {
	Status   models.Status
	Category models.IncidentCategory
}

func (s *Store) CreateIncident(i *models.Incident) error {
	if i.Status == "" {
		i.Status = models.StatusOpen
	}
	if err := s.DB.Create(i).Error; err != nil {
		return goerr.Wrap(err, "failed to create incident", goerr.V("title", i.Title))
	}
	return nil
}

func (s *Store) GetIncident(id uint) (*models.Incident, error) {
	var i models.Incident
	if err := s.DB.First(&i, id).Error; err != nil {
		return nil, notFound(err, "incident", id)
	}
	return &i, nil
}

func (s *Store) ListIncidents(f IncidentFilter) ([]models.Incident, error) {
	q := s.DB.Order("created_at desc, id desc")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var items []models.Incident
	if err := q.Find(&items).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return items, nil
}

func (s *Store) SetIncidentStatus(id uint, status models.Status, now time.Time) (*models.Incident, error) {
	i, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	i.SetStatus(status, now)
	if err := s.DB.Save(i).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", id))
	}
	return i, nil
}

func (s *Store) DeleteIncident(id uint) (*models.Incident, error) {
	i, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Unscoped().Delete(i).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}
	return i, nil
}
