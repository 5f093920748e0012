package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studio-site/internal/analytics"
	"studio-site/internal/logging"
	"studio-site/internal/visitor"
)

func eventFrom(c *gin.Context, path string) analytics.Event {
	return analytics.Event{
		Path:      path,
		VisitorID: visitor.GetOrCreate(c),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}
}

type pageViewRequest struct {
	Path     string `json:"path" binding:"required,startswith=/"`
	Referrer string `json:"referrer" binding:"max=2048"`
}

// RecordPageView принимает маяк со страниц сайта; ответ не ждёт записи.
func (h *Handler) RecordPageView(c *gin.Context) {
	var req pageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ev := eventFrom(c, req.Path)
	if req.Referrer != "" {
		ev.Referrer = req.Referrer
	}
	h.recorder.RecordPageView(c.Request.Context(), ev)
	c.Status(http.StatusAccepted)
}

func (h *Handler) RecordProjectView(c *gin.Context) {
	d, ok := h.loadDetail(c)
	if !ok {
		return
	}
	h.recorder.RecordProjectView(c.Request.Context(), d.Project.ID, eventFrom(c, ""))
	c.Status(http.StatusAccepted)
}

func (h *Handler) GetLikes(c *gin.Context) {
	d, ok := h.loadDetail(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"count": h.recorder.LikeCount(ctx, d.Project.ID),
		"liked": h.recorder.IsLiked(ctx, d.Project.ID, visitor.GetOrCreate(c)),
	})
}

// ToggleLike: при ошибке клиент откатывает оптимистичное состояние.
func (h *Handler) ToggleLike(c *gin.Context) {
	d, ok := h.loadDetail(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	vid := visitor.GetOrCreate(c)

	liked, err := h.recorder.ToggleLike(ctx, d.Project.ID, vid)
	if err != nil {
		logging.Error().Err(err).Str("project_id", d.Project.ID).Str("visitor_id", vid).Msg("toggle like")
		jsonError(c, http.StatusInternalServerError, "Не удалось сохранить лайк")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"count": h.recorder.LikeCount(ctx, d.Project.ID),
	})
}

// AnalyticsSummary — агрегаты за ?days= дней (по умолчанию 30).
func (h *Handler) AnalyticsSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 || days > 365 {
		jsonError(c, http.StatusBadRequest, "Некорректный период")
		return
	}
	top, _ := strconv.Atoi(c.Query("top"))

	since := time.Now().AddDate(0, 0, -days)
	s, err := h.recorder.Summary(c.Request.Context(), since, top)
	if err != nil {
		logging.Error().Err(err).Msg("analytics summary")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки статистики")
		return
	}
	c.JSON(http.StatusOK, s)
}
