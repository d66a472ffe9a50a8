package handlers

import (
	"log/slog"
	"time"

	"hms-system/internal/database"
	"hms-system/internal/metrics"
	"hms-system/internal/report"
	"hms-system/internal/risk"

	"github.com/patrickmn/go-cache"
)

const dashboardCacheKey = "dashboard"

type Deps struct {
	Store    *database.Store
	Reports  *report.Generator
	Labels   risk.Labels
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	CacheTTL time.Duration
}

type Handler struct {
	store   *database.Store
	reports *report.Generator
	labels  risk.Labels
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time

	cache    *cache.Cache
	cacheTTL time.Duration
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	reports := d.Reports
	if reports == nil {
		reports = report.NewGenerator(d.Labels)
	}

	return &Handler{
		store:   d.Store,
		reports: reports,
		labels:  d.Labels,
		metrics: m,
		log:     log,
		now:     time.Now,

		cache:    cache.New(d.CacheTTL, 5*time.Minute),
		cacheTTL: d.CacheTTL,
	}
}

// invalidate drops cached aggregates after a write.
func (h *Handler) invalidate() {
	h.cache.Delete(dashboardCacheKey)
}
