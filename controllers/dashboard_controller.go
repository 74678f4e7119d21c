// Package controllers file: controllers/dashboard_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"

	"catering-admin/services"

	"github.com/gin-gonic/gin"
)

// StatsLoader produces the dashboard statistics.
type StatsLoader interface {
	Load(ctx context.Context) services.Stats
}

// DashboardController renders the overview page.
type DashboardController struct {
	site  *Site
	stats StatsLoader
}

// NewDashboardController creates the controller.
func NewDashboardController(site *Site, stats StatsLoader) *DashboardController {
	return &DashboardController{site: site, stats: stats}
}

// Show renders the dashboard. Failed reads show as zero and are named in
// an error notice; the page itself always renders.
func (dc *DashboardController) Show(c *gin.Context) {
	stats := dc.stats.Load(c.Request.Context())

	data := gin.H{"Stats": stats}
	if len(stats.Failed) > 0 {
		data["Notice"] = &Notice{
			Kind:    NoticeError,
			Title:   "Error",
			Message: "Failed to load " + strings.Join(stats.Failed, ", "),
		}
	}
	dc.site.render(c, http.StatusOK, "dashboard.html", "Dashboard", data)
}
