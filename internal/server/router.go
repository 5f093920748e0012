package server

import (
	"io/fs"
	"net/http"

	"studio-site/internal/analytics"
	"studio-site/internal/cache"
	"studio-site/internal/config"
	"studio-site/internal/handlers"
	"studio-site/internal/logging"
	"studio-site/internal/metrics"
	"studio-site/internal/middleware"
	"studio-site/internal/models"
	"studio-site/internal/projects"
	"studio-site/internal/storage"
	"studio-site/internal/validation"
	"studio-site/internal/visitor"
	"studio-site/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "studio_session"

// NewRouter собирает зависимости и маршруты. recorder и limiter живут
// дольше роутера: main дожидается записей и останавливает очистку.
func NewRouter(cfg *config.Config, db *gorm.DB, recorder *analytics.Recorder, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	validation.Register()

	queryCache := cache.New(cfg.CacheTTL)
	images := storage.NewResolver(cfg.StoragePublicURL)
	h := handlers.New(handlers.Deps{
		DB:       db,
		Cache:    queryCache,
		Projects: projects.NewService(db, queryCache, images),
		Recorder: recorder,
		Images:   images,
		Uploads:  storage.NewUploader(cfg.UploadDir),
	})

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logging.GinLogger(),
		gin.Recovery(),
		metrics.Middleware(),
	)

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	if !storage.IsAbsolute(cfg.StoragePublicURL) {
		r.Static(cfg.StoragePublicURL, cfg.UploadDir)
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser(db))

	// HEALTHCHECK / МЕТРИКИ
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", metrics.Handler())

	// СТРАНИЦЫ
	site := r.Group("/", visitor.Middleware())
	site.GET("/", h.IndexPage)
	site.GET("/projects/:slug", h.ProjectPage)
	site.GET("/project/:id", h.LegacyProjectRedirect)

	// AUTH
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", limiter.Middleware(), h.Login)
	r.GET("/logout", handlers.Logout)

	// ПУБЛИЧНЫЙ API
	api := r.Group("/api", visitor.Middleware())
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/featured", h.ListFeaturedProjects)
	api.GET("/projects/:slug", h.GetProject)
	api.GET("/projects/:slug/related", h.ListRelatedProjects)
	api.GET("/projects/:slug/likes", h.GetLikes)
	api.GET("/map", h.MapData)
	api.GET("/map/geojson", h.MapGeoJSON)
	api.GET("/content/:table", h.ListContent)

	// события и формы ограничены по частоте на посетителя
	events := api.Group("", limiter.Middleware())
	events.POST("/projects/:slug/like", h.ToggleLike)
	events.POST("/projects/:slug/view", h.RecordProjectView)
	events.POST("/analytics/pageview", h.RecordPageView)
	events.POST("/inquiries", h.CreateInquiry)

	// АДМИНКА
	admin := r.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("", h.AdminDashboard)
	admin.GET("/audit", h.AuditPage)

	adminAPI := admin.Group("/api")
	adminAPI.GET("/dashboard", h.AdminDashboardJSON)
	adminAPI.GET("/analytics", h.AnalyticsSummary)
	adminAPI.GET("/audit", h.ListAuditLogs)
	adminAPI.POST("/cache/flush", h.FlushCache)

	adminAPI.GET("/projects", h.AdminListProjects)
	adminAPI.POST("/projects", h.CreateProject)
	adminAPI.PUT("/projects/:id", h.UpdateProject)
	adminAPI.DELETE("/projects/:id", h.DeleteProject)
	adminAPI.GET("/projects/:id/history", h.ProjectHistory)
	adminAPI.POST("/projects/:id/images", h.AddProjectImages)
	adminAPI.DELETE("/projects/:id/images/:image_id", h.DeleteProjectImage)

	adminAPI.GET("/inquiries", h.ListInquiries)
	adminAPI.PATCH("/inquiries/:id/status", h.UpdateInquiryStatus)
	adminAPI.DELETE("/inquiries/:id", h.DeleteInquiry)

	adminAPI.GET("/content/:table", h.ListContent)
	adminAPI.POST("/content/:table", h.CreateContent)
	adminAPI.PUT("/content/:table/:id", h.UpdateContent)
	adminAPI.DELETE("/content/:table/:id", h.DeleteContent)

	r.NoRoute(h.NotFound)

	return r, nil
}
