package database

import (
	"hms-system/internal/models"

	"github.com/m-mizutani/goerr/v2"
)

// CreateAuditLog records a write. A failure here is logged, never returned:
// the audited change has already been committed.
func (s *Store) CreateAuditLog(actor, entity string, entityID uint, action, details string) {
	if actor == "" {
		actor = "anonymous"
	}
	record := models.AuditLog{
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		s.log.Error("failed to write audit log",
			"entity", entity, "entity_id", entityID, "action", action, "error", err)
	}
}

func (s *Store) ListAuditLogs(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.DB.
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audit logs")
	}
	return logs, nil
}

// EntityHistory returns the audit trail of one record, oldest first.
func (s *Store) EntityHistory(entity string, id uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.DB.
		Where("entity = ? AND entity_id = ?", entity, id).
		Order("created_at asc, id asc").
		Find(&logs).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load history", goerr.V("entity", entity), goerr.V("id", id))
	}
	return logs, nil
}
