package visitor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "visitor_"))
	assert.True(t, Valid(a), a)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("visitor_1700000000000_abcdef123456"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("short"))
	assert.False(t, Valid("has space in token"))
	assert.False(t, Valid(strings.Repeat("a", 65)))
}

func TestGetOrCreateIssuesCookie(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/", nil))

	id := GetOrCreate(c)
	require.True(t, Valid(id))
	assert.Equal(t, id, GetOrCreate(c), "same request reuses the token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
}

func TestGetOrCreatePrefersHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderName, "visitor_1_fromheader")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "visitor_2_fromcookie"})
	c, rec := newContext(req)

	assert.Equal(t, "visitor_1_fromheader", GetOrCreate(c))
	assert.Empty(t, rec.Result().Cookies())
}

func TestGetOrCreateUsesCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderName, "bad token!")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "visitor_2_fromcookie"})
	c, _ := newContext(req)

	assert.Equal(t, "visitor_2_fromcookie", GetOrCreate(c))
}

func TestGetOrCreateAfterWriteDegrades(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	c.String(http.StatusOK, "done")

	a := GetOrCreate(c)
	b := GetOrCreate(c)
	assert.NotEqual(t, a, b)
}

func TestMiddlewareSetsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetOrCreate(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, rec.Body.String(), rec.Header().Get(HeaderName))
}

func TestFromRequestIgnoresIssuedToken(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	issued := GetOrCreate(c)
	require.NotEmpty(t, issued)
	assert.Equal(t, issued, FromContext(c))

	_, ok := FromRequest(c)
	assert.False(t, ok, "token minted for this request is not client supplied")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "visitor_cookie_123"})
	c, _ = newContext(req)
	id, ok := FromRequest(c)
	assert.True(t, ok)
	assert.Equal(t, "visitor_cookie_123", id)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderName, "bad token")
	c, _ = newContext(req)
	_, ok = FromRequest(c)
	assert.False(t, ok)
}
