package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studio-site/internal/analytics"
	"studio-site/internal/logging"
	"studio-site/internal/models"
	"studio-site/internal/projects"
	"studio-site/internal/visitor"
)

//
// ПУБЛИЧНЫЙ API
//

// ListProjects отдаёт портфолио; ?category= фильтрует без учёта регистра.
func (h *Handler) ListProjects(c *gin.Context) {
	list, err := h.projects.ListByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		logging.Error().Err(err).Msg("list projects")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

func (h *Handler) ListFeaturedProjects(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.projects.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		logging.Error().Err(err).Msg("list featured projects")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

// loadDetail резолвит :slug; при ошибке ответ уже отправлен.
func (h *Handler) loadDetail(c *gin.Context) (*projects.Detail, bool) {
	d, err := h.projects.GetDetail(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, projects.ErrNotFound) {
		jsonError(c, http.StatusNotFound, "Проект не найден")
		return nil, false
	}
	if err != nil {
		logging.Error().Err(err).Str("slug", c.Param("slug")).Msg("load project")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проекта")
		return nil, false
	}
	return d, true
}

type projectDetailResponse struct {
	*projects.Detail
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
	Views int64 `json:"views"`
}

// GetProject отдаёт проект по слагу или сырому id. Если запрос был не по
// каноническому слагу, redirect=true и клиент меняет адрес.
func (h *Handler) GetProject(c *gin.Context) {
	d, ok := h.loadDetail(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	vid := visitor.GetOrCreate(c)

	c.JSON(http.StatusOK, projectDetailResponse{
		Detail: d,
		Likes:  h.recorder.LikeCount(ctx, d.Project.ID),
		Liked:  h.recorder.IsLiked(ctx, d.Project.ID, vid),
		Views:  h.recorder.ViewCount(ctx, d.Project.ID),
	})
}

func (h *Handler) ListRelatedProjects(c *gin.Context) {
	d, ok := h.loadDetail(c)
	if !ok {
		return
	}
	list, err := h.projects.ListRelated(c.Request.Context(), d.Project.Category, d.Project.ID, projects.RelatedLimit)
	if err != nil {
		logging.Error().Err(err).Str("project_id", d.Project.ID).Msg("list related projects")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

//
// АДМИНКА
//

type projectRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=255"`
	Address     string   `json:"address" binding:"max=255"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required,category"`
	Status      string   `json:"status" binding:"required,project_status"`
	Division    string   `json:"division" binding:"max=100"`
	StartDate   string   `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// apply переносит проверенную форму в модель; ошибка — текст для пользователя.
func (r projectRequest) apply(p *models.Project) string {
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return "Укажите обе координаты или ни одной"
	}
	start, end := parseDate(r.StartDate), parseDate(r.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		return "Дата окончания раньше даты начала"
	}

	category, _ := models.ParseCategory(r.Category)
	status, _ := models.ParseProjectStatus(r.Status)

	p.Title = strings.TrimSpace(r.Title)
	p.Address = strings.TrimSpace(r.Address)
	p.Description = strings.TrimSpace(r.Description)
	p.Category = category
	p.Status = status
	p.Division = strings.TrimSpace(r.Division)
	p.StartDate = start
	p.EndDate = end
	p.Latitude = r.Latitude
	p.Longitude = r.Longitude
	return ""
}

type adminProjectRow struct {
	projects.View
	Views int64 `json:"views"`
	Likes int64 `json:"likes"`
}

func (h *Handler) AdminListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.projects.ListByCategory(ctx, c.Query("category"))
	if err != nil {
		logging.Error().Err(err).Msg("admin list projects")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}

	rows := make([]adminProjectRow, 0, len(list))
	for _, v := range list {
		rows = append(rows, adminProjectRow{
			View:  v,
			Views: h.recorder.ViewCount(ctx, v.ID),
			Likes: h.recorder.LikeCount(ctx, v.ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var project models.Project
	if msg := req.apply(&project); msg != "" {
		jsonError(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&project).Error; err != nil {
		logging.Error().Err(err).Msg("create project")
		jsonError(c, http.StatusInternalServerError, "Ошибка сохранения проекта")
		return
	}

	h.audit(c, "project", project.ID, "create", "Создан проект: "+project.Title)
	h.projects.Invalidate()

	c.JSON(http.StatusCreated, h.projects.ToView(project, 0))
}

func (h *Handler) findProject(c *gin.Context) (*models.Project, bool) {
	var project models.Project
	err := h.db.WithContext(c.Request.Context()).First(&project, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		jsonError(c, http.StatusNotFound, "Проект не найден")
		return nil, false
	}
	if err != nil {
		logging.Error().Err(err).Str("project_id", c.Param("id")).Msg("find project")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки проекта")
		return nil, false
	}
	return &project, true
}

func (h *Handler) UpdateProject(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	oldStatus := project.Status
	if msg := req.apply(project); msg != "" {
		jsonError(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(project).Error; err != nil {
		logging.Error().Err(err).Str("project_id", project.ID).Msg("update project")
		jsonError(c, http.StatusInternalServerError, "Ошибка сохранения проекта")
		return
	}

	h.audit(c, "project", project.ID, "update", "Проект обновлён: "+project.Title)
	if oldStatus != project.Status {
		h.audit(c, "project", project.ID, "status_change", "Статус изменён на: "+string(project.Status))
	}
	h.projects.Invalidate()

	c.JSON(http.StatusOK, h.projects.ToView(*project, 0))
}

// DeleteProject удаляет проект вместе с картинками и событиями аналитики.
func (h *Handler) DeleteProject(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	var images []models.ProjectImage
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Find(&images).Error; err != nil {
			return err
		}
		if err := analytics.DeleteForProject(tx, project.ID); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		logging.Error().Err(err).Str("project_id", project.ID).Msg("delete project")
		jsonError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	for _, img := range images {
		if err := h.uploads.Remove(img.Path); err != nil {
			logging.Warn().Err(err).Str("path", img.Path).Msg("failed to remove image file")
		}
	}

	h.audit(c, "project", project.ID, "delete", "Удалён проект: "+project.Title)
	h.projects.Invalidate()

	c.Status(http.StatusNoContent)
}

func (h *Handler) ProjectHistory(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	var logs []models.AuditLog
	if err := h.db.WithContext(c.Request.Context()).
		Where("entity IN ? AND entity_id = ?", []string{"project", "project_image"}, project.ID).
		Preload("User").
		Order("created_at asc").
		Find(&logs).Error; err != nil {
		logging.Error().Err(err).Str("project_id", project.ID).Msg("project history")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": h.projects.ToView(*project, 0), "logs": auditRows(logs)})
}
