// Package visitor выдаёт анонимный псевдонимный идентификатор браузера.
// Это не аутентификация: токен нужен только для подсчёта лайков и просмотров.
package visitor

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderName: фронтенд хранит токен в localStorage под ключом StorageKey и шлёт в заголовке.
	HeaderName = "X-Visitor-ID"
	CookieName = "visitor_id"
	StorageKey = "visitor_id"

	contextKey = "visitor_id"
	cookieTTL  = 10 * 365 * 24 * 60 * 60
)

var tokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// NewID: случайная часть плюс время: visitor_<unix ms>_<random>.
func NewID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("visitor_%d_%s", time.Now().UnixMilli(), random)
}

// Valid отсеивает мусор из заголовков и кук.
func Valid(token string) bool {
	return tokenRe.MatchString(token)
}

// GetOrCreate возвращает сохранённый токен или выдаёт новый и ставит куку.
// Если куку поставить нельзя (ответ уже отправлен), каждый вызов получит свежий токен.
func GetOrCreate(c *gin.Context) string {
	if v := c.GetString(contextKey); v != "" {
		return v
	}

	if v, ok := FromRequest(c); ok {
		c.Set(contextKey, v)
		return v
	}

	id := NewID()
	if c.Writer.Written() {
		return id
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, cookieTTL, "/", "", false, true)
	c.Set(contextKey, id)
	return id
}

// Middleware гарантирует, что у каждого запроса есть токен посетителя.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetOrCreate(c)
		c.Header(HeaderName, id)
		c.Next()
	}
}

// FromContext возвращает токен, уже выданный этому запросу, без создания нового.
func FromContext(c *gin.Context) string {
	return c.GetString(contextKey)
}

// FromRequest возвращает токен, присланный клиентом в заголовке или куке.
// Токен, выданный в этом же запросе, сюда не попадает.
func FromRequest(c *gin.Context) (string, bool) {
	if v := strings.TrimSpace(c.GetHeader(HeaderName)); Valid(v) {
		return v, true
	}
	if v, err := c.Cookie(CookieName); err == nil && Valid(v) {
		return v, true
	}
	return "", false
}
