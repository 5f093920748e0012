package middleware

import (
	"studio-site/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CurrentUserKey = "CurrentUser"

func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := SessionUserIDOf(c); uid > 0 {
			var user models.User
			if err := db.WithContext(c.Request.Context()).First(&user, uid).Error; err == nil {
				c.Set(CurrentUserKey, user)
			}
		}

		c.Next()
	}
}

// SessionUserIDOf возвращает id вошедшего пользователя или 0.
func SessionUserIDOf(c *gin.Context) uint {
	uid, _ := sessions.Default(c).Get(SessionUserID).(uint)
	return uid
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
