package database

import (
	"time"

	"hms-system/internal/models"
)

// SeedDemoData inserts a handful of typical kitchen hazards and one incident
// so a fresh install has something to look at. Rows with an existing title
// are skipped.
func (s *Store) SeedDemoData(now time.Time) (int, error) {
	deadline := now.AddDate(0, 1, 0)

	risks := []models.RiskAssessment{
		{
			Title: "Glatt gulv ved oppvask", Area: "Kjøkken",
			Likelihood: 4, Consequence: 3,
			ResponsiblePerson:  "Daglig leder",
			Deadline:           &deadline,
			PreventiveMeasures: "Sklisikre matter, rutine for tørking av gulv",
		},
		{
			Title: "Brannskade fra frityr", Area: "Kjøkken",
			Likelihood: 2, Consequence: 4,
			ResponsiblePerson:  "Kjøkkensjef",
			PreventiveMeasures: "Opplæring, brannteppe ved frityr, lokk tilgjengelig",
		},
		{
			Title: "Brudd på kjølekjeden", Area: "Lager",
			Likelihood: 2, Consequence: 2,
			ResponsiblePerson:  "Innkjøpsansvarlig",
			PreventiveMeasures: "Daglig temperaturlogg",
		},
	}

	created := 0
	for i := range risks {
		r := &risks[i]
		var count int64
		if err := s.DB.Model(&models.RiskAssessment{}).Where("title = ?", r.Title).Count(&count).Error; err != nil {
			s.log.Warn("failed to check seed risk assessment", "title", r.Title, "error", err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.CreateRiskAssessment(r); err != nil {
			return created, err
		}
		s.CreateAuditLog("system", "risk_assessment", r.ID, "create", "Demo: "+r.Title)
		created++
	}

	occurred := now.AddDate(0, 0, -3)
	inc := models.Incident{
		Title:           "Kutt i finger ved grønnsakskutting",
		Category:        models.CategorySafety,
		Severity:        models.SeverityLow,
		Location:        "Kjøkken",
		OccurredAt:      &occurred,
		ReportedBy:      "Kokk",
		ImmediateAction: "Førstehjelp gitt, plaster",
	}
	var count int64
	if err := s.DB.Model(&models.Incident{}).Where("title = ?", inc.Title).Count(&count).Error; err == nil && count == 0 {
		if err := s.CreateIncident(&inc); err != nil {
			return created, err
		}
		s.CreateAuditLog("system", "incident", inc.ID, "create", "Demo: "+inc.Title)
		created++
	}

	s.log.Info("seeded demo data", "created", created)
	return created, nil
}
