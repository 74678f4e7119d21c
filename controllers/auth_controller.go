// Package controllers handles admin authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/middleware"
	"catering-admin/models"
	"catering-admin/services"

	"github.com/gin-gonic/gin"
)

// Authenticator checks an email/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Session, error)
}

// AuthController serves login and logout.
type AuthController struct {
	site    *Site
	auth    Authenticator
	metrics services.MetricsPublisher
}

// NewAuthController creates the controller.
func NewAuthController(site *Site, auth Authenticator, metrics services.MetricsPublisher) *AuthController {
	if metrics == nil {
		metrics = services.NopPublisher{}
	}
	return &AuthController{site: site, auth: auth, metrics: metrics}
}

// ------------------ login handling ------------------

// ShowLogin renders the login form.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	ac.site.render(c, http.StatusOK, "login.html", "Login", gin.H{"Email": "", "Error": ""})
}

// PerformLogin authenticates the admin and stores the session.
// The session is saved before the redirect is written, so the next page
// always sees the admin as logged in.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	session, err := ac.auth.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		status := apperr.Status(err)
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			logger.Warn.Printf("[PerformLogin] Invalid login attempt for %q", email)
			ac.metrics.Publish(c.Request.Context(), services.MetricFailedLogins, 1, services.UnitCount, nil)
		} else {
			logger.Error.Printf("[PerformLogin] Login for %q failed: %v", email, err)
		}
		ac.site.render(c, status, "login.html", "Login", gin.H{
			"Email":  email,
			"Error":  apperr.Message(err),
			"Notice": errorNotice(err),
		})
		return
	}

	if err := middleware.GateFrom(c).SetCurrentUser(session); err != nil {
		logger.Error.Printf("[PerformLogin] Failed to save session: %v", err)
		ac.site.render(c, http.StatusInternalServerError, "login.html", "Login", gin.H{
			"Email": email,
			"Error": "Internal error, please try again.",
		})
		return
	}

	logger.Info.Printf("[PerformLogin] %s logged in", session.Email)
	setNotice(c, Notice{Kind: NoticeSuccess, Title: "Welcome back!", Message: "Logged in as " + session.Username})
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session and returns to the login page.
func (ac *AuthController) Logout(c *gin.Context) {
	gate := middleware.GateFrom(c)
	if gate != nil {
		if u := gate.CurrentUser(); u != nil {
			logger.Info.Printf("[Logout] Logging out %s", u.Email)
		}
		if err := gate.Logout(); err != nil {
			logger.Error.Printf("[Logout] Error saving session during logout: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/login")
}
