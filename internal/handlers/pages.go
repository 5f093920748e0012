package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studio-site/internal/cache"
	"studio-site/internal/logging"
	"studio-site/internal/models"
	"studio-site/internal/projects"
	"studio-site/internal/slug"
	"studio-site/internal/visitor"
)

// loadContent читает справочник через тот же кэш, что и /api/content/:table.
func (h *Handler) loadContent(ctx context.Context, name string) (any, error) {
	t, ok := contentTables[name]
	if !ok {
		return nil, errors.New("unknown content table " + name)
	}
	db := h.db.WithContext(ctx)
	return cache.Remember(h.cache, cache.Key(name, nil), func() (any, error) {
		return t.list(db)
	})
}

func (h *Handler) IndexPage(c *gin.Context) {
	ctx := c.Request.Context()
	h.recorder.RecordPageView(ctx, eventFrom(c, c.Request.URL.Path))

	featured, err := h.projects.ListFeatured(ctx, projects.DefaultFeaturedLimit)
	if err != nil {
		logging.Error().Err(err).Msg("index: featured projects")
	}
	services, err := h.loadContent(ctx, "services")
	if err != nil {
		logging.Error().Err(err).Msg("index: services")
	}
	achievements, err := h.loadContent(ctx, "achievements")
	if err != nil {
		logging.Error().Err(err).Msg("index: achievements")
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"featured":     featured,
		"services":     services,
		"achievements": achievements,
		"categories":   models.Categories,
	})
}

func (h *Handler) notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "not_found.html", gin.H{"path": c.Request.URL.Path})
}

// NotFound — обработчик NoRoute: JSON для /api, страница для остального.
func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		jsonError(c, http.StatusNotFound, "Не найдено")
		return
	}
	h.notFound(c)
}

// canonicalURL сохраняет query string, чтобы не терять utm-метки.
func canonicalURL(c *gin.Context, p projects.View) string {
	u := slug.Path(p.Title, p.ID)
	if q := c.Request.URL.RawQuery; q != "" {
		u += "?" + q
	}
	return u
}

// ProjectPage: SEO-страница проекта. Любой неканонический адрес
// (сырой id, устаревший заголовок) получает 301 на канонический.
func (h *Handler) ProjectPage(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := h.projects.GetDetail(ctx, c.Param("slug"))
	if errors.Is(err, projects.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("slug", c.Param("slug")).Msg("project page")
		c.String(http.StatusInternalServerError, "Ошибка загрузки проекта")
		return
	}
	if d.Redirect {
		c.Redirect(http.StatusMovedPermanently, canonicalURL(c, d.Project))
		return
	}

	ev := eventFrom(c, c.Request.URL.Path)
	h.recorder.RecordProjectView(ctx, d.Project.ID, ev)
	h.recorder.RecordPageView(ctx, ev)

	related, err := h.projects.ListRelated(ctx, d.Project.Category, d.Project.ID, projects.RelatedLimit)
	if err != nil {
		logging.Warn().Err(err).Str("project_id", d.Project.ID).Msg("project page: related")
	}

	render(c, http.StatusOK, "project.html", gin.H{
		"title":         d.Project.Title,
		"project":       d.Project,
		"canonicalPath": slug.Path(d.Project.Title, d.Project.ID),
		"related":       related,
		"likes":         h.recorder.LikeCount(ctx, d.Project.ID),
		"liked":         h.recorder.IsLiked(ctx, d.Project.ID, visitor.GetOrCreate(c)),
		"categoryLabel": d.Project.Category.Label(),
	})
}

// LegacyProjectRedirect обслуживает старые ссылки вида /project/<uuid>.
func (h *Handler) LegacyProjectRedirect(c *gin.Context) {
	d, err := h.projects.GetDetail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, projects.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("id", c.Param("id")).Msg("legacy project redirect")
		c.String(http.StatusInternalServerError, "Ошибка загрузки проекта")
		return
	}
	c.Redirect(http.StatusMovedPermanently, canonicalURL(c, d.Project))
}

const recentInquiries = 10

func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.recorder.Summary(ctx, time.Now().AddDate(0, 0, -30), 5)
	if err != nil {
		logging.Error().Err(err).Msg("dashboard: summary")
	}
	counts, err := h.inquiryCounts(c)
	if err != nil {
		logging.Error().Err(err).Msg("dashboard: inquiry counts")
	}

	var inquiries []models.Inquiry
	if err := h.db.WithContext(ctx).Order("created_at desc").Limit(recentInquiries).Find(&inquiries).Error; err != nil {
		logging.Error().Err(err).Msg("dashboard: recent inquiries")
	}

	var projectCount int64
	if err := h.db.WithContext(ctx).Model(&models.Project{}).Count(&projectCount).Error; err != nil {
		logging.Error().Err(err).Msg("dashboard: project count")
	}

	render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"summary":         summary,
		"inquiryCounts":   counts,
		"inquiryStatuses": models.InquiryStatuses,
		"inquiries":       inquiries,
		"projectCount":    projectCount,
		"contentTables":   ContentTables(),
	})
}

// AdminDashboardJSON отдаёт те же цифры для SPA-админки.
func (h *Handler) AdminDashboardJSON(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.recorder.Summary(ctx, time.Now().AddDate(0, 0, -30), 5)
	if err != nil {
		logging.Error().Err(err).Msg("dashboard json: summary")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки статистики")
		return
	}
	counts, err := h.inquiryCounts(c)
	if err != nil {
		logging.Error().Err(err).Msg("dashboard json: inquiry counts")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки заявок")
		return
	}

	hits, misses := h.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"analytics": summary,
		"inquiries": counts,
		"cache": gin.H{
			"entries": h.cache.Len(),
			"hits":    hits,
			"misses":  misses,
		},
	})
}

// FlushCache сбрасывает кэш запросов целиком, например после правки БД руками.
func (h *Handler) FlushCache(c *gin.Context) {
	n := h.cache.Len()
	h.cache.Clear()
	h.audit(c, "cache", "", "flush", fmt.Sprintf("Сброшено записей: %d", n))
	logging.Info().Int("entries", n).Msg("query cache flushed")
	c.JSON(http.StatusOK, gin.H{"flushed": n})
}
