package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Actor    string `gorm:"size:255;not null"` // from the proxy identity header
	Entity   string `gorm:"size:50;not null"`  // "risk_assessment", "incident"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "update", "status_change", "delete"
	Details  string `gorm:"type:text"`
}
