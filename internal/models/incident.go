package models

import (
	"time"

	"gorm.io/gorm"
)

type IncidentCategory string
type Severity string

const (
	CategorySafety      IncidentCategory = "safety"
	CategoryHealth      IncidentCategory = "health"
	CategoryEnvironment IncidentCategory = "environment"

	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var IncidentCategories = []IncidentCategory{CategorySafety, CategoryHealth, CategoryEnvironment}
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

func (c IncidentCategory) Valid() bool {
	switch c {
	case CategorySafety, CategoryHealth, CategoryEnvironment:
		return true
	}
	return false
}

func (c IncidentCategory) Label() string {
	switch c {
	case CategorySafety:
		return "Sikkerhet"
	case CategoryHealth:
		return "Helse"
	case CategoryEnvironment:
		return "Miljø"
	}
	return string(c)
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Lav"
	case SeverityMedium:
		return "Middels"
	case SeverityHigh:
		return "Høy"
	}
	return string(s)
}

// Incident is a reported deviation (avvik).
type Incident struct {
	gorm.Model

	Title           string           `gorm:"size:255;not null"`
	Category        IncidentCategory `gorm:"type:varchar(32);not null;index"`
	Severity        Severity         `gorm:"type:varchar(16);not null"`
	Description     string           `gorm:"type:text"`
	Location        string           `gorm:"size:255"`
	OccurredAt      *time.Time
	ReportedBy      string `gorm:"size:255"`
	ImmediateAction string `gorm:"type:text"`

	Status      Status `gorm:"type:varchar(20);not null;index"`
	CompletedAt *time.Time
}

func (i *Incident) SetStatus(s Status, now time.Time) {
	i.Status = s
	if s == StatusDone {
		i.CompletedAt = &now
	} else {
		i.CompletedAt = nil
	}
}
