// Package controllers provides the HTTP handlers of the admin panel.
// File: controllers/site.go
package controllers

import (
	"errors"
	"fmt"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ---------------- site-wide rendering ----------------

// Site carries what every page needs besides its own data.
type Site struct {
	BusinessName string
}

// Title formats the document title for page.
func (s *Site) Title(page string) string {
	return fmt.Sprintf("%s | %s - Admin Panel", page, s.BusinessName)
}

// render adds the shared layout values and writes the template.
func (s *Site) render(c *gin.Context, status int, tmpl, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = s.Title(page)
	data["Page"] = page
	data["Business"] = s.BusinessName
	data["CurrentUser"] = middleware.CurrentUser(c)
	if _, set := data["Notice"]; !set {
		data["Notice"] = popNotice(c)
	}
	if _, set := data["Errors"]; !set {
		data["Errors"] = map[string]string{}
	}
	c.HTML(status, tmpl, data)
}

// ---------------- notifications ----------------

const (
	noticeKindKey    = "notice_kind"
	noticeTitleKey   = "notice_title"
	noticeMessageKey = "notice_message"
)

// Notice kinds
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a one-shot notification shown at the top of the next page.
type Notice struct {
	Kind    string
	Title   string
	Message string
}

// errorNotice converts err into the notification shown to the admin.
func errorNotice(err error) *Notice {
	n := &Notice{Kind: NoticeError, Title: "Error", Message: apperr.Message(err)}
	if errors.Is(err, apperr.ErrInvalidCredentials) {
		n.Title = "Login Failed"
	}
	return n
}

// setNotice stores a notification for the page after the redirect.
func setNotice(c *gin.Context, n Notice) {
	session := sessions.Default(c)
	session.Set(noticeKindKey, n.Kind)
	session.Set(noticeTitleKey, n.Title)
	session.Set(noticeMessageKey, n.Message)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[setNotice] Failed to save session: %v", err)
	}
}

// popNotice returns and clears the pending notification, if any.
func popNotice(c *gin.Context) *Notice {
	session := sessions.Default(c)
	kind, _ := session.Get(noticeKindKey).(string)
	if kind == "" {
		return nil
	}
	title, _ := session.Get(noticeTitleKey).(string)
	msg, _ := session.Get(noticeMessageKey).(string)

	session.Delete(noticeKindKey)
	session.Delete(noticeTitleKey)
	session.Delete(noticeMessageKey)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[popNotice] Failed to save session: %v", err)
	}
	return &Notice{Kind: kind, Title: title, Message: msg}
}
