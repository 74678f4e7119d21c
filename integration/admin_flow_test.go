//go:build integration
// +build integration

// integration/admin_flow_test.go
package integration

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catering-admin/config"
	"catering-admin/models"
	"catering-admin/repository"
	"catering-admin/router"
	"catering-admin/storage"
	"catering-admin/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// startTestServer serves the full panel over a real listener.
func startTestServer(t *testing.T) (*httptest.Server, *http.Client, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	testutil.CreateAdmin(t, db, "Asha", "asha@example.com", "correct-horse")

	engine, err := router.New(router.Deps{
		Config: &config.Config{App: config.AppConfig{
			BusinessName:  "Jagdamba Caterers",
			SessionSecret: config.DefaultSessionSecret,
		}},
		Reviews:   repository.NewReviewRepository(db),
		Inquiries: repository.NewInquiryRepository(db),
		Menu:      repository.NewMenuRepository(db),
		Admins:    repository.NewAdminRepository(db),
		Store:     storage.NewMemoryStorage("http://localhost"),
	})
	require.NoError(t, err)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}, db
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAdminFlow(t *testing.T) {
	server, client, db := startTestServer(t)

	// Given: a guest
	resp, err := client.Get(server.URL + "/dashboard")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Sign in to the admin panel", "guests land on the login page")

	// When: they log in the redirect is followed to the dashboard
	resp, err = client.PostForm(server.URL+"/login", url.Values{"email": {"asha@example.com"}, "password": {"correct-horse"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)
	assert.Contains(t, body, "Logged in as Asha")

	// Then: an inquiry can be recorded and contacted
	resp, err = client.PostForm(server.URL+"/inquiries", url.Values{
		"name":       {"Meera"},
		"email":      {"meera@example.com"},
		"phone":      {"+91 98765 43210"},
		"event_type": {"Wedding"},
		"event_date": {"2026-12-05"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "/inquiries", resp.Request.URL.Path)
	assert.Contains(t, body, "Inquiry created successfully")
	assert.Contains(t, body, "https://wa.me/919876543210?text=")

	var inq models.Inquiry
	require.NoError(t, db.First(&inq).Error)
	resp, err = client.Get(server.URL + "/inquiries/" + inq.ID + "/whatsapp-qr")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_ = readBody(t, resp)

	// and a second admin can be added and removed, but not yourself
	resp, err = client.PostForm(server.URL+"/admins", url.Values{"username": {"Ravi"}, "email": {"ravi@example.com"}, "password": {"tandoor-42"}})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Admin created successfully")

	var me, ravi models.Admin
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&me).Error)
	require.NoError(t, db.Where("email = ?", "ravi@example.com").First(&ravi).Error)

	resp, err = client.PostForm(server.URL+"/admins/"+me.ID+"/delete", nil)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "You cannot delete your own account")

	resp, err = client.PostForm(server.URL+"/admins/"+ravi.ID+"/delete", nil)
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Admin deleted successfully")
	assert.False(t, strings.Contains(body, "ravi@example.com"))

	// Finally: logging out ends the session
	resp, err = client.Get(server.URL + "/logout")
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	_ = readBody(t, resp)
}
