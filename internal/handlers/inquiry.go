package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studio-site/internal/logging"
	"studio-site/internal/models"
)

//
// ФОРМА ОБРАТНОЙ СВЯЗИ
//

type inquiryRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=255"`
	Email       string   `json:"email" binding:"required,email,max=255"`
	Phone       string   `json:"phone" binding:"omitempty,max=50"`
	ProjectType string   `json:"project_type" binding:"omitempty,category"`
	Message     string   `json:"message" binding:"required,min=10,max=5000"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

func (h *Handler) CreateInquiry(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inquiry := models.Inquiry{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if cat, ok := models.ParseCategory(req.ProjectType); ok {
		inquiry.ProjectType = &cat
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&inquiry).Error; err != nil {
		logging.Error().Err(err).Msg("create inquiry")
		jsonError(c, http.StatusInternalServerError, "Не удалось отправить заявку")
		return
	}

	logging.Info().Str("inquiry_id", inquiry.ID).Msg("new inquiry")
	c.JSON(http.StatusCreated, gin.H{"id": inquiry.ID, "status": inquiry.Status})
}

//
// АДМИНКА
//

func (h *Handler) ListInquiries(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at desc")

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.InquiryStatus(statusStr)
		if !status.Valid() {
			jsonError(c, http.StatusBadRequest, "Некорректный статус")
			return
		}
		q = q.Where("status = ?", status)
	}

	var inquiries []models.Inquiry
	if err := q.Find(&inquiries).Error; err != nil {
		logging.Error().Err(err).Msg("list inquiries")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки заявок")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
}

func (h *Handler) findInquiry(c *gin.Context) (*models.Inquiry, bool) {
	var inquiry models.Inquiry
	err := h.db.WithContext(c.Request.Context()).First(&inquiry, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		jsonError(c, http.StatusNotFound, "Заявка не найдена")
		return nil, false
	}
	if err != nil {
		logging.Error().Err(err).Str("inquiry_id", c.Param("id")).Msg("find inquiry")
		jsonError(c, http.StatusInternalServerError, "Ошибка загрузки заявки")
		return nil, false
	}
	return &inquiry, true
}

type inquiryStatusRequest struct {
	Status string `json:"status" binding:"required,inquiry_status"`
}

// UpdateInquiryStatus разрешает переход в любой статус перечисления.
func (h *Handler) UpdateInquiryStatus(c *gin.Context) {
	inquiry, ok := h.findInquiry(c)
	if !ok {
		return
	}

	var req inquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inquiry.Status = models.InquiryStatus(req.Status)
	if err := h.db.WithContext(c.Request.Context()).
		Model(inquiry).
		Update("status", inquiry.Status).Error; err != nil {
		logging.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("update inquiry status")
		jsonError(c, http.StatusInternalServerError, "Ошибка обновления статуса")
		return
	}

	h.audit(c, "inquiry", inquiry.ID, "status_change", "Статус изменён на: "+req.Status)
	c.JSON(http.StatusOK, inquiry)
}

func (h *Handler) DeleteInquiry(c *gin.Context) {
	inquiry, ok := h.findInquiry(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(inquiry).Error; err != nil {
		logging.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("delete inquiry")
		jsonError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	h.audit(c, "inquiry", inquiry.ID, "delete", "Удалена заявка от "+inquiry.Email)
	c.Status(http.StatusNoContent)
}

// inquiryCounts: число заявок по каждому статусу, нули включены.
func (h *Handler) inquiryCounts(c *gin.Context) (map[models.InquiryStatus]int64, error) {
	type row struct {
		Status models.InquiryStatus
		Count  int64
	}
	var rows []row
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Inquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.InquiryStatus]int64, len(models.InquiryStatuses))
	for _, s := range models.InquiryStatuses {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
