package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hms-system/internal/database"
	"hms-system/internal/middleware"
	"hms-system/internal/models"

	"github.com/gin-gonic/gin"
)

const entityIncident = "incident"

type incidentForm struct {
	Title           string `form:"title"`
	Category        string `form:"category"`
	Severity        string `form:"severity"`
	Description     string `form:"description"`
	Location        string `form:"location"`
	OccurredAt      string `form:"occurred_at"`
	ReportedBy      string `form:"reported_by"`
	ImmediateAction string `form:"immediate_action"`
}

func (f incidentForm) build() (*models.Incident, *formError) {
	title := strings.TrimSpace(f.Title)
	if len([]rune(title)) < minTitleLength {
		return nil, &formError{Field: "title", Message: "Tittel må være minst 3 tegn"}
	}

	category := models.IncidentCategory(f.Category)
	if !category.Valid() {
		return nil, &formError{Field: "category", Message: "Velg kategori"}
	}

	severity := models.Severity(f.Severity)
	if !severity.Valid() {
		return nil, &formError{Field: "severity", Message: "Velg alvorlighetsgrad"}
	}

	var occurred *time.Time
	if d := strings.TrimSpace(f.OccurredAt); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, &formError{Field: "occurred_at", Message: "Ugyldig dato"}
		}
		occurred = &t
	}

	return &models.Incident{
		Title:           title,
		Category:        category,
		Severity:        severity,
		Description:     strings.TrimSpace(f.Description),
		Location:        strings.TrimSpace(f.Location),
		OccurredAt:      occurred,
		ReportedBy:      strings.TrimSpace(f.ReportedBy),
		ImmediateAction: strings.TrimSpace(f.ImmediateAction),
		Status:          models.StatusOpen,
	}, nil
}

func parseIncidentFilter(c *gin.Context) database.IncidentFilter {
	var f database.IncidentFilter
	if s := models.Status(c.Query("status")); s.Valid() {
		f.Status = s
	}
	if cat := models.IncidentCategory(c.Query("category")); cat.Valid() {
		f.Category = cat
	}
	return f
}

func (h *Handler) ListIncidents(c *gin.Context) {
	filter := parseIncidentFilter(c)

	items, err := h.store.ListIncidents(filter)
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste avvik")
		return
	}

	h.render(c, http.StatusOK, "incidents_list.html", gin.H{
		"items":          items,
		"statuses":       models.Statuses,
		"categories":     models.IncidentCategories,
		"FilterStatus":   string(filter.Status),
		"FilterCategory": string(filter.Category),
	})
}

func (h *Handler) renderIncidentForm(c *gin.Context, status int, form incidentForm, fe *formError) {
	data := gin.H{
		"form":       form,
		"categories": models.IncidentCategories,
		"severities": models.Severities,
	}
	if fe != nil {
		data["error"] = fe.Message
		data["errorField"] = fe.Field
	}
	h.render(c, status, "incidents_form.html", data)
}

func (h *Handler) ShowNewIncident(c *gin.Context) {
	h.renderIncidentForm(c, http.StatusOK, incidentForm{
		OccurredAt: h.now().Format(dateLayout),
		ReportedBy: middleware.Actor(c),
	}, nil)
}

func (h *Handler) CreateIncident(c *gin.Context) {
	var form incidentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderIncidentForm(c, http.StatusBadRequest, form, &formError{Message: "Ugyldige data"})
		return
	}

	inc, fe := form.build()
	if fe != nil {
		h.renderIncidentForm(c, http.StatusBadRequest, form, fe)
		return
	}

	if err := h.store.CreateIncident(inc); err != nil {
		h.handleError(c, err, "Kunne ikke lagre avviket")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityIncident, inc.ID, "create",
		fmt.Sprintf("Meldt: %s (%s, %s)", inc.Title, inc.Category.Label(), inc.Severity.Label()))
	h.metrics.IncidentReported(inc.Category)
	h.invalidate()

	flash(c, "Avvik registrert")
	c.Redirect(http.StatusFound, "/incidents")
}

func (h *Handler) ChangeIncidentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status := models.Status(c.PostForm("status"))
	if !status.Valid() {
		c.String(http.StatusBadRequest, "Ugyldig status")
		return
	}

	inc, err := h.store.GetIncident(id)
	if err != nil {
		h.handleError(c, err, "Avviket finnes ikke")
		return
	}
	if inc.Status == status {
		c.Redirect(http.StatusFound, "/incidents")
		return
	}

	inc, err = h.store.SetIncidentStatus(id, status, h.now())
	if err != nil {
		h.handleError(c, err, "Kunne ikke endre status")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityIncident, inc.ID, "status_change",
		"Status endret til: "+status.Label())
	h.invalidate()

	flash(c, "Status endret")
	c.Redirect(http.StatusFound, "/incidents")
}

func (h *Handler) DeleteIncident(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	inc, err := h.store.DeleteIncident(id)
	if err != nil {
		h.handleError(c, err, "Kunne ikke slette avviket")
		return
	}

	h.store.CreateAuditLog(middleware.Actor(c), entityIncident, inc.ID, "delete", "Slettet: "+inc.Title)
	h.invalidate()

	flash(c, "Avvik slettet")
	c.Redirect(http.StatusFound, "/incidents")
}

func (h *Handler) ExportIncidents(c *gin.Context) {
	items, err := h.store.ListIncidents(parseIncidentFilter(c))
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste avvik")
		return
	}

	var buf bytes.Buffer
	pages, err := h.reports.Incidents(&buf, items)
	if err != nil {
		h.handleError(c, err, "Kunne ikke lage rapport")
		return
	}

	h.log.Info("exported incidents", "count", len(items), "pages", pages)
	sendPDF(c, fmt.Sprintf("avvik-%s.pdf", h.now().Format(dateLayout)), buf.Bytes())
}
