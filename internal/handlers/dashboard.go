package handlers

import (
	"net/http"

	"hms-system/internal/database"
	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// summary returns the dashboard aggregates, cached until the next write or
// the configured TTL.
func (h *Handler) summary() (*database.Summary, error) {
	if v, ok := h.cache.Get(dashboardCacheKey); ok {
		if s, ok := v.(*database.Summary); ok {
			return s, nil
		}
	}

	s, err := h.store.DashboardSummary(h.now())
	if err != nil {
		return nil, err
	}
	if h.cacheTTL > 0 {
		h.cache.Set(dashboardCacheKey, s, cache.DefaultExpiration)
	}
	return s, nil
}

func (h *Handler) Dashboard(c *gin.Context) {
	s, err := h.summary()
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste oversikten")
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"summary":    s,
		"levels":     risk.Levels,
		"categories": models.IncidentCategories,
	})
}
