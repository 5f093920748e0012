package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studio-site/internal/logging"
	"studio-site/internal/models"
	"studio-site/internal/projects"
)

const maxImagesPerUpload = 20

type imageURLRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Caption  string `json:"caption" binding:"max=255"`
	Category string `json:"category" binding:"omitempty,category"`
}

// AddProjectImages принимает либо multipart с полем images, либо JSON со ссылкой.
func (h *Handler) AddProjectImages(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	var rows []models.ProjectImage
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		rows, ok = h.uploadImages(c, project.ID)
	} else {
		rows, ok = bindImageURL(c, project.ID)
	}
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&rows).Error; err != nil {
		logging.Error().Err(err).Str("project_id", project.ID).Msg("save project images")
		for _, r := range rows {
			_ = h.uploads.Remove(r.Path)
		}
		jsonError(c, http.StatusInternalServerError, "Ошибка сохранения изображений")
		return
	}

	out := make([]projects.Image, 0, len(rows))
	for _, r := range rows {
		h.audit(c, "project_image", project.ID, "create", "Добавлено изображение "+r.ID)
		out = append(out, projects.Image{ID: r.ID, URL: h.images.URL(r.Path), Caption: r.Caption, Category: r.Category})
	}
	h.projects.Invalidate()

	c.JSON(http.StatusCreated, gin.H{"images": out})
}

func (h *Handler) uploadImages(c *gin.Context, projectID string) ([]models.ProjectImage, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Некорректная форма")
		return nil, false
	}
	files := form.File["images"]
	if len(files) == 0 {
		jsonError(c, http.StatusBadRequest, "Не выбрано ни одного файла")
		return nil, false
	}
	if len(files) > maxImagesPerUpload {
		jsonError(c, http.StatusBadRequest, "Слишком много файлов за раз")
		return nil, false
	}

	caption := strings.TrimSpace(c.PostForm("caption"))
	category := ""
	if cat, ok := models.ParseCategory(c.PostForm("category")); ok {
		category = string(cat)
	}

	rows := make([]models.ProjectImage, 0, len(files))
	for _, fh := range files {
		path, err := h.uploads.SaveProjectImage(projectID, fh)
		if err != nil {
			for _, r := range rows {
				_ = h.uploads.Remove(r.Path)
			}
			jsonError(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
		rows = append(rows, models.ProjectImage{
			ProjectID: projectID,
			Path:      path,
			Caption:   caption,
			Category:  category,
		})
	}
	return rows, true
}

func bindImageURL(c *gin.Context, projectID string) ([]models.ProjectImage, bool) {
	var req imageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	category := ""
	if cat, ok := models.ParseCategory(req.Category); ok {
		category = string(cat)
	}
	return []models.ProjectImage{{
		ProjectID: projectID,
		Path:      req.URL,
		Caption:   strings.TrimSpace(req.Caption),
		Category:  category,
	}}, true
}

func (h *Handler) DeleteProjectImage(c *gin.Context) {
	var img models.ProjectImage
	err := h.db.WithContext(c.Request.Context()).
		First(&img, "id = ? AND project_id = ?", c.Param("image_id"), c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		jsonError(c, http.StatusNotFound, "Изображение не найдено")
		return
	}
	if err != nil {
		logging.Error().Err(err).Msg("find project image")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&img).Error; err != nil {
		logging.Error().Err(err).Str("image_id", img.ID).Msg("delete project image")
		jsonError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}
	if err := h.uploads.Remove(img.Path); err != nil {
		logging.Warn().Err(err).Str("path", img.Path).Msg("failed to remove image file")
	}

	h.audit(c, "project_image", img.ProjectID, "delete", "Удалено изображение "+img.ID)
	h.projects.Invalidate()

	c.Status(http.StatusNoContent)
}
