// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"
	"strings"

	"catering-admin/logger"
	"catering-admin/storage"

	"github.com/gin-gonic/gin"
)

// PageController serves the pages that are not tied to an entity.
type PageController struct {
	site  *Site
	media *storage.MemoryStorage
}

// NewPageController creates the controller. media may be nil when objects
// live in S3.
func NewPageController(site *Site, media *storage.MemoryStorage) *PageController {
	return &PageController{site: site, media: media}
}

// Health answers load balancer probes.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Root sends visitors to the dashboard; the auth gate takes it from there.
func (pc *PageController) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// NotFound renders the not-found page for unknown routes.
func (pc *PageController) NotFound(c *gin.Context) {
	logger.Warn.Printf("NotFound: %s %s", c.Request.Method, c.Request.URL.Path)
	pc.site.render(c, http.StatusNotFound, "not_found.html", "Page Not Found", gin.H{"Path": c.Request.URL.Path})
}

// Media serves objects held by the in-memory store.
func (pc *PageController) Media(c *gin.Context) {
	if pc.media == nil {
		c.Status(http.StatusNotFound)
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, ok := pc.media.Get(storage.Bucket(c.Param("bucket")), key)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	ct := obj.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Data(http.StatusOK, ct, obj.Data)
}
