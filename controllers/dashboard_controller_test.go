// file: controllers/dashboard_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"catering-admin/services"

	"github.com/stretchr/testify/assert"
)

func TestDashboard_Show(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/dashboard", NewDashboardController(testSite, stubStats{services.Stats{TotalReviews: 3, TotalMenuItems: 7}}).Show)

	w := newTestClient(t, router).get("/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "title=Dashboard | Jagdamba Caterers - Admin Panel")
	assert.Contains(t, w.Body.String(), "reviews=3 menu=7")
	assert.NotContains(t, w.Body.String(), "notice=")
}

func TestDashboard_FailedReadsAreNamed(t *testing.T) {
	stats := services.Stats{TotalReviews: 2, Failed: []string{services.ReadInquiries, services.ReadMenu}}
	router := setupTestRouter(t)
	router.GET("/dashboard", NewDashboardController(testSite, stubStats{stats}).Show)

	w := newTestClient(t, router).get("/dashboard")
	assert.Equal(t, http.StatusOK, w.Code, "the page renders with fallbacks")
	assert.Contains(t, w.Body.String(), "notice=error:Error:Failed to load inquiries, menu items")
	assert.Contains(t, w.Body.String(), "reviews=2 menu=0")
}
