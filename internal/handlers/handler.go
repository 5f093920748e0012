// Package handlers: HTTP-обработчики публичного сайта, JSON API и админки.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"studio-site/internal/analytics"
	"studio-site/internal/cache"
	"studio-site/internal/database"
	"studio-site/internal/middleware"
	"studio-site/internal/projects"
	"studio-site/internal/storage"
)

type Handler struct {
	db       *gorm.DB
	cache    *cache.Cache
	projects *projects.Service
	recorder *analytics.Recorder
	images   *storage.Resolver
	uploads  *storage.Uploader
}

type Deps struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	Projects *projects.Service
	Recorder *analytics.Recorder
	Images   *storage.Resolver
	Uploads  *storage.Uploader
}

func New(d Deps) *Handler {
	return &Handler{
		db:       d.DB,
		cache:    d.Cache,
		projects: d.Projects,
		recorder: d.Recorder,
		images:   d.Images,
		uploads:  d.Uploads,
	}
}

// audit пишет в журнал от имени вошедшего пользователя.
func (h *Handler) audit(c *gin.Context, entity, entityID, action, details string) {
	if uid := middleware.SessionUserIDOf(c); uid > 0 {
		database.CreateAuditLog(h.db, uid, entity, entityID, action, details)
	}
}

func jsonError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindError превращает ошибки валидатора в список полей.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Некорректные данные",
			"fields": fields,
		})
		return
	}
	jsonError(c, http.StatusBadRequest, "Некорректные данные: "+err.Error())
}
