package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hms-system/internal/database"
	"hms-system/internal/middleware"
	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout     = "2006-01-02"
	entityRisk     = "risk_assessment"
	minTitleLength = 3
)

// riskForm holds the raw form values so a rejected submission can be shown
// again exactly as typed.
type riskForm struct {
	Title              string `form:"title"`
	Area               string `form:"area"`
	Likelihood         string `form:"likelihood"`
	Consequence        string `form:"consequence"`
	Status             string `form:"status"`
	ResponsiblePerson  string `form:"responsible_person"`
	Deadline           string `form:"deadline"`
	PreventiveMeasures string `form:"preventive_measures"`
}

// formError names the offending input so the template can highlight it.
type formError struct {
	Field   string
	Message string
}

func (e *formError) Error() string { return e.Field + ": " + e.Message }

func formFromRisk(a *models.RiskAssessment) riskForm {
	f := riskForm{
		Title:              a.Title,
		Area:               a.Area,
		Likelihood:         strconv.Itoa(a.Likelihood),
		Consequence:        strconv.Itoa(a.Consequence),
		Status:             string(a.Status),
		ResponsiblePerson:  a.ResponsiblePerson,
		PreventiveMeasures: a.PreventiveMeasures,
	}
	if a.Deadline != nil {
		f.Deadline = a.Deadline.Format(dateLayout)
	}
	return f
}

var scaleMessages = map[string]string{
	"likelihood":  "Sannsynlighet må være et heltall fra 1 til 5",
	"consequence": "Konsekvens må være et heltall fra 1 til 5",
}

// apply validates the form and copies it onto a. Nothing is written to a when
// validation fails.
func (f riskForm) apply(a *models.RiskAssessment, now time.Time) *formError {
	title := strings.TrimSpace(f.Title)
	if len([]rune(title)) < minTitleLength {
		return &formError{Field: "title", Message: "Beskrivelse av faren må være minst 3 tegn"}
	}

	likelihood, err := risk.ParseScale("likelihood", f.Likelihood)
	if err != nil {
		return &formError{Field: "likelihood", Message: scaleMessages["likelihood"]}
	}
	consequence, err := risk.ParseScale("consequence", f.Consequence)
	if err != nil {
		return &formError{Field: "consequence", Message: scaleMessages["consequence"]}
	}

	status := a.Status
	if s := strings.TrimSpace(f.Status); s != "" {
		status = models.Status(s)
		if !status.Valid() {
			return &formError{Field: "status", Message: "Ugyldig status"}
		}
	}
	if status == "" {
		status = models.StatusOpen
	}

	var deadline *time.Time
	if d := strings.TrimSpace(f.Deadline); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return &formError{Field: "deadline", Message: "Ugyldig dato for frist"}
		}
		deadline = &t
	}

	a.Title = title
	a.Area = strings.TrimSpace(f.Area)
	a.Likelihood = likelihood
	a.Consequence = consequence
	a.ResponsiblePerson = strings.TrimSpace(f.ResponsiblePerson)
	a.Deadline = deadline
	a.PreventiveMeasures = strings.TrimSpace(f.PreventiveMeasures)
	if status != a.Status {
		a.SetStatus(status, now)
	}
	return nil
}

func parseRiskFilter(c *gin.Context) database.RiskFilter {
	var f database.RiskFilter
	if s := models.Status(c.Query("status")); s.Valid() {
		f.Status = s
	}
	if l, err := risk.ParseLevel(c.Query("level")); err == nil {
		f.Level = l
	}
	return f
}

//
// LIST
//

func (h *Handler) ListRiskAssessments(c *gin.Context) {
	filter := parseRiskFilter(c)

	items, err := h.store.ListRiskAssessments(filter)
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste risikovurderinger")
		return
	}

	h.render(c, http.StatusOK, "risks_list.html", gin.H{
		"items":        items,
		"statuses":     models.Statuses,
		"levels":       risk.Levels,
		"FilterStatus": string(filter.Status),
		"FilterLevel":  string(filter.Level),
		"now":          h.now(),
	})
}

//
// CREATE / EDIT
//

func (h *Handler) renderRiskForm(c *gin.Context, status int, form riskForm, action string, fe *formError) {
	data := gin.H{
		"form":     form,
		"action":   action,
		"statuses": models.Statuses,
		"scale":    []int{1, 2, 3, 4, 5},
	}
	if fe != nil {
		data["error"] = fe.Message
		data["errorField"] = fe.Field
	}

	// initial badge; the page keeps it current through the preview API
	if l, err := risk.ParseScale("likelihood", form.Likelihood); err == nil {
		if cns, err := risk.ParseScale("consequence", form.Consequence); err == nil {
			if res, err := risk.Compute(l, cns); err == nil {
				data["preview"] = res
			}
		}
	}

	h.render(c, status, "risks_form.html", data)
}

func (h *Handler) ShowNewRiskAssessment(c *gin.Context) {
	h.renderRiskForm(c, http.StatusOK, riskForm{
		Likelihood:  "1",
		Consequence: "1",
		Status:      string(models.StatusOpen),
	}, "/risks/new", nil)
}

func (h *Handler) CreateRiskAssessment(c *gin.Context) {
	var form riskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRiskForm(c, http.StatusBadRequest, form, "/risks/new",
			&formError{Message: "Ugyldige data"})
		return
	}

	var a models.RiskAssessment
	if fe := form.apply(&a, h.now()); fe != nil {
		h.renderRiskForm(c, http.StatusBadRequest, form, "/risks/new", fe)
		return
	}

	if err := h.store.CreateRiskAssessment(&a); err != nil {
		h.handleError(c, err, "Kunne ikke lagre risikovurderingen")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityRisk, a.ID, "create",
		fmt.Sprintf("Opprettet: %s (score %d, %s)", a.Title, a.RiskScore, a.RiskLevel.Label()))
	h.metrics.RiskAssessmentSaved(a.RiskLevel)
	h.invalidate()

	flash(c, "Risikovurdering lagret")
	c.Redirect(http.StatusFound, "/risks")
}

func (h *Handler) ShowEditRiskAssessment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.store.GetRiskAssessment(id)
	if err != nil {
		h.handleError(c, err, "Risikovurderingen finnes ikke")
		return
	}

	h.renderRiskForm(c, http.StatusOK, formFromRisk(a), fmt.Sprintf("/risks/%d/edit", a.ID), nil)
}

func (h *Handler) UpdateRiskAssessment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	action := fmt.Sprintf("/risks/%d/edit", id)

	a, err := h.store.GetRiskAssessment(id)
	if err != nil {
		h.handleError(c, err, "Risikovurderingen finnes ikke")
		return
	}

	var form riskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRiskForm(c, http.StatusBadRequest, form, action, &formError{Message: "Ugyldige data"})
		return
	}

	before := a.RiskLevel
	if fe := form.apply(a, h.now()); fe != nil {
		h.renderRiskForm(c, http.StatusBadRequest, form, action, fe)
		return
	}

	if err := h.store.UpdateRiskAssessment(a); err != nil {
		h.handleError(c, err, "Kunne ikke lagre risikovurderingen")
		return
	}

	details := fmt.Sprintf("Oppdatert: %s (score %d, %s)", a.Title, a.RiskScore, a.RiskLevel.Label())
	if before != a.RiskLevel {
		details += fmt.Sprintf(", nivå endret fra %s", before.Label())
	}
	h.store.CreateAuditLog(middleware.Actor(c), entityRisk, a.ID, "update", details)
	h.metrics.RiskAssessmentSaved(a.RiskLevel)
	h.invalidate()

	flash(c, "Risikovurdering oppdatert")
	c.Redirect(http.StatusFound, "/risks")
}

//
// STATUS / DELETE
//

func (h *Handler) ChangeRiskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status := models.Status(c.PostForm("status"))
	if !status.Valid() {
		c.String(http.StatusBadRequest, "Ugyldig status")
		return
	}

	a, err := h.store.GetRiskAssessment(id)
	if err != nil {
		h.handleError(c, err, "Risikovurderingen finnes ikke")
		return
	}
	if a.Status == status {
		c.Redirect(http.StatusFound, "/risks")
		return
	}

	if _, err := h.store.SetRiskStatus(id, status, h.now()); err != nil {
		h.handleError(c, err, "Kunne ikke endre status")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityRisk, id, "status_change",
		"Status endret til: "+status.Label())
	h.invalidate()

	flash(c, "Status endret")
	c.Redirect(http.StatusFound, "/risks")
}

func (h *Handler) DeleteRiskAssessment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.store.DeleteRiskAssessment(id)
	if err != nil {
		h.handleError(c, err, "Kunne ikke slette risikovurderingen")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityRisk, a.ID, "delete", "Slettet: "+a.Title)
	h.invalidate()

	flash(c, "Risikovurdering slettet")
	c.Redirect(http.StatusFound, "/risks")
}

//
// HISTORY
//

func (h *Handler) ShowRiskHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.store.GetRiskAssessment(id)
	if err != nil {
		h.handleError(c, err, "Risikovurderingen finnes ikke")
		return
	}

	logs, err := h.store.EntityHistory(entityRisk, id)
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste historikk")
		return
	}

	h.render(c, http.StatusOK, "risk_history.html", gin.H{
		"item": a,
		"logs": logs,
	})
}

//
// MATRIX / PREVIEW
//

func (h *Handler) ShowRiskMatrix(c *gin.Context) {
	m, err := h.store.RiskMatrix()
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste risikomatrisen")
		return
	}

	h.render(c, http.StatusOK, "risks_matrix.html", gin.H{
		"rows":   m.Rows(),
		"scale":  []int{1, 2, 3, 4, 5},
		"levels": risk.Levels,
	})
}

type previewResponse struct {
	risk.Assessment
	Label string `json:"label"`
	Color string `json:"color"`
}

type previewError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// PreviewRisk scores the values currently in the form. It is called on every
// change of the likelihood or consequence inputs.
func (h *Handler) PreviewRisk(c *gin.Context) {
	likelihood, err := risk.ParseScale("likelihood", c.Query("likelihood"))
	if err != nil {
		c.JSON(http.StatusBadRequest, previewError{Error: scaleMessages["likelihood"], Field: "likelihood"})
		return
	}
	consequence, err := risk.ParseScale("consequence", c.Query("consequence"))
	if err != nil {
		c.JSON(http.StatusBadRequest, previewError{Error: scaleMessages["consequence"], Field: "consequence"})
		return
	}

	res, err := risk.Compute(likelihood, consequence)
	if err != nil {
		field := risk.FieldOf(err)
		c.JSON(http.StatusBadRequest, previewError{Error: scaleMessages[field], Field: field})
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		Assessment: res,
		Label:      res.Level.Label(),
		Color:      res.Level.Color(),
	})
}

//
// EXPORT
//

func (h *Handler) ExportRiskAssessments(c *gin.Context) {
	items, err := h.store.ListRiskAssessments(parseRiskFilter(c))
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste risikovurderinger")
		return
	}

	var buf bytes.Buffer
	pages, err := h.reports.RiskAssessments(&buf, items)
	if err != nil {
		if errors.Is(err, risk.ErrInvalidArgument) {
			// a stored row is broken; that is our fault, not the caller's
			h.log.Error("stored risk assessment cannot be scored", "error", err)
			c.String(http.StatusInternalServerError, "Kunne ikke lage rapport")
			return
		}
		h.handleError(c, err, "Kunne ikke lage rapport")
		return
	}

	h.log.Info("exported risk assessments", "count", len(items), "pages", pages)
	sendPDF(c, fmt.Sprintf("risikovurderinger-%s.pdf", h.now().Format(dateLayout)), buf.Bytes())
}

func sendPDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}
