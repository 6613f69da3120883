package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/middleware"
	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/response"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/pkg/apperror"
)

const messageNotFound = "Resource not found"

type PageHandler struct {
	site *site.Site
}

func NewPageHandler(s *site.Site) *PageHandler {
	return &PageHandler{site: s}
}

// RegisterRoutes serves every routable page of the catalog at its path.
func (h *PageHandler) RegisterRoutes(r *gin.RouterGroup) {
	for _, page := range h.site.Catalog.Routable() {
		r.GET(page.Path, h.render(page))
	}
}

func (h *PageHandler) render(page *site.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, site.LayoutTemplate, h.site.View(page))
	}
}

// NotFound renders the 404 page. API clients get the JSON envelope from ErrorHandler.
func (h *PageHandler) NotFound(c *gin.Context) {
	if response.WantsHTML(c) {
		c.HTML(http.StatusNotFound, site.LayoutTemplate, h.site.View(h.site.Special(site.SlugNotFound)))
		return
	}
	_ = c.Error(apperror.NotFound(messageNotFound))
}

// InternalError renders the error page after a recovered panic.
func (h *PageHandler) InternalError(c *gin.Context) {
	if response.WantsHTML(c) {
		c.HTML(http.StatusInternalServerError, site.LayoutTemplate, h.site.View(h.site.Special(site.SlugError)))
		return
	}
	response.Error(c, http.StatusInternalServerError, middleware.MessageUnexpected, nil)
}
