package server

import (
	"log/slog"
	"net/http"

	"hms-system/internal/config"
	"hms-system/internal/handlers"
	"hms-system/internal/metrics"
	"hms-system/internal/middleware"
	"hms-system/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
)

const sessionName = "hms_session"

func NewRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics, log *slog.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(m))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse templates")
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// JSON; no session needed
	r.GET("/api/risk/preview", h.PreviewRisk)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})

	app := r.Group("/")
	app.Use(sessions.Sessions(sessionName, store))
	app.Use(middleware.InjectActor(cfg.IdentityHeader))

	// OVERSIKT
	app.GET("/", h.Dashboard)

	// RISIKOVURDERINGER
	app.GET("/risks", h.ListRiskAssessments)
	app.GET("/risks/new", h.ShowNewRiskAssessment)
	app.POST("/risks/new", h.CreateRiskAssessment)
	app.GET("/risks/matrix", h.ShowRiskMatrix)
	app.GET("/risks/export.pdf", h.ExportRiskAssessments)
	app.GET("/risks/:id/edit", h.ShowEditRiskAssessment)
	app.POST("/risks/:id/edit", h.UpdateRiskAssessment)
	app.POST("/risks/:id/status", h.ChangeRiskStatus)
	app.POST("/risks/:id/delete", h.DeleteRiskAssessment)
	app.GET("/risks/:id/history", h.ShowRiskHistory)

	// AVVIK
	app.GET("/incidents", h.ListIncidents)
	app.GET("/incidents/new", h.ShowNewIncident)
	app.POST("/incidents/new", h.CreateIncident)
	app.GET("/incidents/export.pdf", h.ExportIncidents)
	app.POST("/incidents/:id/status", h.ChangeIncidentStatus)
	app.POST("/incidents/:id/delete", h.DeleteIncident)

	// REVISJONSLOGG
	app.GET("/audit", h.ListAuditLogs)

	return r, nil
}
