package models

import (
	"time"

	"hms-system/internal/risk"

	"gorm.io/gorm"
)

// RiskAssessment is one hazard in the risk register. RiskScore and RiskLevel
// are derived columns and are stamped in BeforeSave on every write.
type RiskAssessment struct {
	gorm.Model

	Title string `gorm:"size:255;not null"` // hazard
	Area  string `gorm:"size:100"`          // kitchen, storage, serving...

	Likelihood  int        `gorm:"not null"`
	Consequence int        `gorm:"not null"`
	RiskScore   int        `gorm:"not null;index"`
	RiskLevel   risk.Level `gorm:"type:varchar(16);not null;index"`

	Status             Status `gorm:"type:varchar(20);not null;index"`
	ResponsiblePerson  string `gorm:"size:255"`
	Deadline           *time.Time
	PreventiveMeasures string `gorm:"type:text"`
	CompletedAt        *time.Time
}

func (a *RiskAssessment) BeforeSave(tx *gorm.DB) error {
	return a.Recompute()
}

// Recompute refreshes the derived score and level from likelihood and
// consequence.
func (a *RiskAssessment) Recompute() error {
	res, err := risk.Compute(a.Likelihood, a.Consequence)
	if err != nil {
		return err
	}
	a.RiskScore = res.Score
	a.RiskLevel = res.Level
	if a.Status == "" {
		a.Status = StatusOpen
	}
	return nil
}

// SetStatus changes status and keeps CompletedAt in step.
func (a *RiskAssessment) SetStatus(s Status, now time.Time) {
	a.Status = s
	if s == StatusDone {
		a.CompletedAt = &now
	} else {
		a.CompletedAt = nil
	}
}

// Overdue reports an unfinished assessment whose deadline has passed.
func (a RiskAssessment) Overdue(now time.Time) bool {
	return a.Status != StatusDone && a.Deadline != nil && a.Deadline.Before(now)
}
