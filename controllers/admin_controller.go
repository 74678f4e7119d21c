// Package controllers provides HTTP handlers for various admin operations.
// File: controllers/admin_controller.go
package controllers

import (
	"context"
	"strings"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/middleware"
	"catering-admin/models"
	"catering-admin/services"
	"catering-admin/storage"

	"github.com/gin-gonic/gin"
)

// ---------------- admin form ----------------

// AdminForm is the admin create/edit form. The password is required on
// create and optional on edit, where a blank password keeps the old one.
type AdminForm struct {
	Username string `form:"username" validate:"notblank"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password"`

	ProfilePictureURL string `form:"-"`
	avatarChanged     bool
	hash              string
}

func (f *AdminForm) Validate(editing bool) error {
	err := services.ValidateForm(f)
	if editing || strings.TrimSpace(f.Password) != "" {
		return err
	}

	missing := &apperr.ValidationError{Field: "password", Message: "Password is required"}
	if verrs, ok := err.(apperr.ValidationErrors); ok {
		return append(verrs, missing)
	}
	if err != nil {
		return err
	}
	return apperr.ValidationErrors{missing}
}

// Prepare hashes a newly entered password.
func (f *AdminForm) Prepare(bool) error {
	if f.Password == "" {
		return nil
	}
	hash, err := models.HashPassword(f.Password)
	if err != nil {
		return err
	}
	f.hash = hash
	f.Password = ""
	return nil
}

func (f *AdminForm) Row() *models.Admin {
	return &models.Admin{
		Username:          strings.TrimSpace(f.Username),
		Email:             models.NormalizeEmail(f.Email),
		PasswordHash:      f.hash,
		ProfilePictureURL: f.ProfilePictureURL,
	}
}

func (f *AdminForm) Patch() map[string]any {
	patch := map[string]any{
		"username": strings.TrimSpace(f.Username),
		"email":    models.NormalizeEmail(f.Email),
	}
	if f.hash != "" {
		patch["password"] = f.hash
	}
	if f.avatarChanged {
		patch["profile_picture"] = f.ProfilePictureURL
	}
	return patch
}

func (f *AdminForm) ImageField() string          { return "profile_picture" }
func (f *AdminForm) ImageBucket() storage.Bucket { return storage.BucketAdminAvatars }
func (f *AdminForm) SetImageURL(url string) {
	f.ProfilePictureURL = url
	f.avatarChanged = true
}

// ---------------- Admin Controller ----------------

// AdminCounter reports how many admins exist.
type AdminCounter interface {
	Count(ctx context.Context) (int64, error)
}

// AdminController manages admin accounts, including the logged-in admin's own.
type AdminController struct {
	*Resource[models.Admin, *AdminForm]
	counter AdminCounter
}

// NewAdminController builds the admins screen.
func NewAdminController(site *Site, gw Gateway[models.Admin], counter AdminCounter, uploads *services.UploadPipeline, inflight *services.InFlight) *AdminController {
	ac := &AdminController{counter: counter}
	ac.Resource = &Resource[models.Admin, *AdminForm]{
		Path:     "/admins",
		Label:    "Admin",
		Page:     "Admins",
		Template: "admins.html",
		Site:     site,
		Gateway:  gw,
		Uploads:  uploads,
		InFlight: inflight,
		NewForm:  func() *AdminForm { return &AdminForm{} },
		FormOf: func(a *models.Admin) *AdminForm {
			return &AdminForm{Username: a.Username, Email: a.Email, ProfilePictureURL: a.ProfilePictureURL}
		},
		Decorate:     ac.decorate,
		BeforeDelete: ac.guardDelete,
		AfterSave:    ac.refreshSession,
	}
	return ac
}

// guardDelete refuses to delete the caller's own account (before any
// gateway call) and the last remaining admin.
func (ac *AdminController) guardDelete(c *gin.Context, id string) error {
	me := middleware.CurrentUser(c)
	if me != nil && me.ID == id {
		return apperr.ErrSelfDelete
	}

	n, err := ac.counter.Count(c.Request.Context())
	if err != nil {
		return err
	}
	if n <= 1 {
		return apperr.ErrLastAdmin
	}
	return nil
}

// refreshSession rewrites the session record after the admin edited their own row.
func (ac *AdminController) refreshSession(c *gin.Context, editingID string) {
	me := middleware.CurrentUser(c)
	if me == nil || editingID == "" || me.ID != editingID {
		return
	}

	row, err := ac.Gateway.Get(c.Request.Context(), editingID)
	if err != nil {
		logger.Warn.Printf("[AdminController.refreshSession] Reload %s failed: %v", editingID, err)
		return
	}
	s := row.Session()
	if err := middleware.GateFrom(c).SetCurrentUser(&s); err != nil {
		logger.Error.Printf("[AdminController.refreshSession] Save session failed: %v", err)
	}
}

// decorate marks the caller's own row for the "your profile" card.
func (ac *AdminController) decorate(c *gin.Context, rows []models.Admin, data gin.H) {
	me := middleware.CurrentUser(c)
	if me == nil {
		return
	}
	data["MeID"] = me.ID
	for i := range rows {
		if rows[i].ID == me.ID {
			data["Profile"] = rows[i]
			return
		}
	}
}
