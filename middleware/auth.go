// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"catering-admin/auth"
	"catering-admin/logger"
	"catering-admin/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// gateKey is the gin context key holding the request's *auth.Gate.
const gateKey = "authGate"

// -------------- auth gate --------------

// SessionGate creates the auth gate for this request from the cookie
// session and stores it in the gin context. Must run after sessions.Sessions.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := auth.NewGate(auth.NewCookieStore(sessions.Default(c)))
		gate.Init()
		c.Set(gateKey, gate)
		c.Next()
	}
}

// GateFrom returns the request's gate, or nil when SessionGate did not run.
func GateFrom(c *gin.Context) *auth.Gate {
	v, ok := c.Get(gateKey)
	if !ok {
		return nil
	}
	gate, _ := v.(*auth.Gate)
	return gate
}

// CurrentUser returns the logged-in admin for this request, or nil.
func CurrentUser(c *gin.Context) *models.Session {
	gate := GateFrom(c)
	if gate == nil {
		return nil
	}
	return gate.CurrentUser()
}

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures the user is logged in.
// How it works:
// - While the gate is still initializing, answers the loading page (503).
// - If no user is found, redirects to "/login" and aborts execution.
// - Otherwise, the request proceeds.
// Usage:
//
//	protected := router.Group("/", AuthRequired)
func AuthRequired(c *gin.Context) {
	gate := GateFrom(c)
	if gate == nil || gate.IsInitializing() {
		logger.Warn.Printf("[AuthRequired] Gate not ready for %s", c.Request.URL.Path)
		c.HTML(http.StatusServiceUnavailable, "loading.html", gin.H{"Title": "Loading"})
		c.Abort()
		return
	}

	if gate.CurrentUser() == nil {
		logger.Debug.Printf("[AuthRequired] No session for %s; redirecting to /login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Next()
}

// GuestOnly keeps logged-in admins away from the login page.
func GuestOnly(c *gin.Context) {
	if CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
		return
	}
	c.Next()
}
