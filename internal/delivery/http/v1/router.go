package v1

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirtansukhadiya/logified-prod/config"
	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/middleware"
	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/internal/usecase"
	"github.com/kirtansukhadiya/logified-prod/pkg/security"
)

// Files produced by cmd/sitemap and served from PUBLIC_DIR.
var generatedFiles = []string{"sitemap.xml", "sitemap.xml.gz", "sitemap.html", "robots.txt"}

// Embedded asset directories served under the same name.
var assetDirs = []string{"css", "js", "assets"}

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Site      *site.Site
	Static    fs.FS // css, js and assets
	Config    *config.Config
	Logger    *slog.Logger
	Events    *security.EventLogger // contact-form audit stream
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(deps.Site.Templates)

	root := &r.RouterGroup
	pages := NewPageHandler(deps.Site)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(corsOrigins(deps.Config), deps.Config.GinMode == gin.ReleaseMode)) // CORS must be first!
	r.Use(middleware.Recovery(deps.Logger, pages.InternalError))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Logger))

	// Public routes
	pages.RegisterRoutes(root)
	NewHealthHandler(root, deps.HealthUC)
	NewContactHandler(root, deps.ContactUC, deps.Site, deps.Events, deps.Config.ContactEmailTo)

	// Static assets
	for _, dir := range assetDirs {
		sub, err := fs.Sub(deps.Static, dir)
		if err != nil {
			continue
		}
		r.StaticFS("/"+dir, http.FS(sub))
	}
	for _, name := range generatedFiles {
		r.GET("/"+name, publicFile(filepath.Join(deps.Config.PublicDir, name), pages))
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(pages.NotFound)

	return r
}

// publicFile serves a generated file, or the 404 page until it exists.
func publicFile(path string, pages *PageHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			pages.NotFound(c)
			return
		}
		c.File(path)
	}
}

func corsOrigins(cfg *config.Config) []string {
	return append([]string{cfg.BaseURL}, cfg.CORSAllowedOrigins...)
}
