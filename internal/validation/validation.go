// Package validation регистрирует собственные правила в валидаторе gin.
package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"studio-site/internal/models"
)

var (
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	once   sync.Once
)

// Register добавляет правила "slug", "category", "project_status", "inquiry_status".
// Безопасно вызывать несколько раз.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("slug", validSlug)
		_ = v.RegisterValidation("category", validCategory)
		_ = v.RegisterValidation("project_status", validProjectStatus)
		_ = v.RegisterValidation("inquiry_status", validInquiryStatus)
	})
}

func validSlug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}

func validCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseCategory(fl.Field().String())
	return ok
}

func validProjectStatus(fl validator.FieldLevel) bool {
	_, ok := models.ParseProjectStatus(fl.Field().String())
	return ok
}

func validInquiryStatus(fl validator.FieldLevel) bool {
	return models.InquiryStatus(fl.Field().String()).Valid()
}
