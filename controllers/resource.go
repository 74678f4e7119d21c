// Package controllers file: controllers/resource.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/middleware"
	"catering-admin/services"
	"catering-admin/storage"

	"github.com/gin-gonic/gin"
)

// ---------------- contracts ----------------

// Gateway is the persistence contract of one entity.
type Gateway[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
}

// Form is the bound, editable shape of one entity.
type Form[T any] interface {
	// Validate checks the input; editing is true when an existing row is edited.
	Validate(editing bool) error
	// Row builds the row to insert.
	Row() *T
	// Patch lists the columns an edit writes.
	Patch() map[string]any
}

// ImageForm is implemented by forms with an optional image upload.
type ImageForm interface {
	ImageField() string
	ImageBucket() storage.Bucket
	SetImageURL(url string)
}

// Preparer is implemented by forms that need work after validation and
// before the write, such as hashing a password.
type Preparer interface {
	Prepare(editing bool) error
}

// ---------------- resource controller ----------------

// Resource serves the list page and the create/edit/delete actions of one entity.
type Resource[T any, F Form[T]] struct {
	Path     string // route prefix, e.g. "/reviews"
	Label    string // notification label, e.g. "Menu item"
	Page     string // page name used in the title and nav
	Template string
	Site     *Site
	Gateway  Gateway[T]
	Uploads  *services.UploadPipeline
	InFlight *services.InFlight
	NewForm  func() F // zero-valued form the request is bound into
	FormOf   func(row *T) F

	// optional hooks
	BlankForm    func() F // form shown by ?new=1; defaults to NewForm
	Decorate     func(c *gin.Context, rows []T, data gin.H)
	BeforeDelete func(c *gin.Context, id string) error
	AfterSave    func(c *gin.Context, editingID string)
}

// Submit runs one create (editingID == "") or edit. Order: in-flight guard,
// validation, preparation, upload, write. Nothing is written when an earlier
// step fails.
func (r *Resource[T, F]) Submit(ctx context.Context, actorID, editingID string, form F, file *services.FileUpload) error {
	key := actorID + ":" + r.Path
	if !r.InFlight.Acquire(key) {
		return apperr.ErrSubmitInProgress
	}
	defer r.InFlight.Release(key)

	editing := editingID != ""
	if err := form.Validate(editing); err != nil {
		return err
	}
	if p, ok := any(form).(Preparer); ok {
		if err := p.Prepare(editing); err != nil {
			return err
		}
	}
	if img, ok := any(form).(ImageForm); ok && file != nil {
		url, err := r.Uploads.Upload(ctx, img.ImageBucket(), file)
		if err != nil {
			return err
		}
		img.SetImageURL(url)
	}

	if editing {
		return r.Gateway.Update(ctx, editingID, form.Patch())
	}
	return r.Gateway.Insert(ctx, form.Row())
}

// List renders the page. ?new=1 opens an empty form, ?edit=<id> opens the
// form for that row.
func (r *Resource[T, F]) List(c *gin.Context) {
	data := gin.H{}
	if c.Query("new") != "" {
		data["Dialog"] = true
		data["Form"] = r.blankForm()
	}
	if id := c.Query("edit"); id != "" {
		row, err := r.Gateway.Get(c.Request.Context(), id)
		if err != nil {
			logger.Warn.Printf("[%s.List] Cannot open %s for editing: %v", r.Page, id, err)
			data["Notice"] = errorNotice(err)
		} else {
			data["Dialog"] = true
			data["EditingID"] = id
			data["Form"] = r.FormOf(row)
		}
	}
	r.renderList(c, http.StatusOK, data)
}

// Create handles POST <Path>.
func (r *Resource[T, F]) Create(c *gin.Context) {
	r.save(c, "")
}

// Update handles POST <Path>/:id.
func (r *Resource[T, F]) Update(c *gin.Context) {
	r.save(c, c.Param("id"))
}

// Remove handles POST <Path>/:id/delete.
func (r *Resource[T, F]) Remove(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if r.BeforeDelete != nil {
		if err := r.BeforeDelete(c, id); err != nil {
			logger.Warn.Printf("[%s.Remove] Refused to delete %s: %v", r.Page, id, err)
			setNotice(c, *errorNotice(err))
			c.Redirect(http.StatusSeeOther, r.Path)
			return
		}
	}

	if err := r.Gateway.Delete(ctx, id); err != nil {
		logger.Error.Printf("[%s.Remove] Delete %s failed: %v", r.Page, id, err)
		setNotice(c, *errorNotice(err))
	} else {
		logger.Info.Printf("[%s.Remove] Deleted %s", r.Page, id)
		setNotice(c, Notice{Kind: NoticeSuccess, Title: fmt.Sprintf("%s deleted successfully", r.Label)})
	}
	c.Redirect(http.StatusSeeOther, r.Path)
}

func (r *Resource[T, F]) save(c *gin.Context, editingID string) {
	form := r.NewForm()
	if err := c.ShouldBind(form); err != nil {
		logger.Warn.Printf("[%s.save] Unreadable form: %v", r.Page, err)
		r.renderForm(c, form, editingID, &apperr.ValidationError{Message: "The form could not be read"})
		return
	}

	file, err := r.formFile(c, form)
	if err != nil {
		r.renderForm(c, form, editingID, err)
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := r.Submit(c.Request.Context(), actor.ID, editingID, form, file); err != nil {
		logger.Warn.Printf("[%s.save] Submit by %s failed: %v", r.Page, actor.Email, err)
		r.renderForm(c, form, editingID, err)
		return
	}

	if r.AfterSave != nil {
		r.AfterSave(c, editingID)
	}
	verb := "created"
	if editingID != "" {
		verb = "updated"
	}
	logger.Info.Printf("[%s.save] %s %s by %s", r.Page, r.Label, verb, actor.Email)
	setNotice(c, Notice{Kind: NoticeSuccess, Title: fmt.Sprintf("%s %s successfully", r.Label, verb)})
	c.Redirect(http.StatusSeeOther, r.Path)
}

func (r *Resource[T, F]) blankForm() F {
	if r.BlankForm != nil {
		return r.BlankForm()
	}
	return r.NewForm()
}

// formFile reads the optional image of an ImageForm.
func (r *Resource[T, F]) formFile(c *gin.Context, form F) (*services.FileUpload, error) {
	img, ok := any(form).(ImageForm)
	if !ok {
		return nil, nil
	}
	fh, err := c.FormFile(img.ImageField())
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", img.ImageField(), err)
	}
	return services.NewFileUpload(fh)
}

// renderForm re-renders the page with the dialog open and the error shown.
func (r *Resource[T, F]) renderForm(c *gin.Context, form F, editingID string, err error) {
	fields := map[string]string{}
	var many apperr.ValidationErrors
	var one *apperr.ValidationError
	switch {
	case errors.As(err, &many):
		fields = many.Fields()
	case errors.As(err, &one) && one.Field != "":
		fields[one.Field] = one.Message
	}

	r.renderList(c, apperr.Status(err), gin.H{
		"Dialog":    true,
		"Form":      form,
		"EditingID": editingID,
		"Errors":    fields,
		"Notice":    errorNotice(err),
	})
}

// renderList loads the rows and renders the page. A failed load still
// renders, with an empty list and the error shown; a partial load keeps
// the rows it got.
func (r *Resource[T, F]) renderList(c *gin.Context, status int, data gin.H) {
	rows, err := r.Gateway.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[%s.renderList] Load failed: %v", r.Page, err)
		if !apperr.IsPartial(err) {
			rows = nil
			data["LoadFailed"] = true
		}
		if n, _ := data["Notice"].(*Notice); n == nil {
			data["Notice"] = errorNotice(err)
		}
	}
	data["Rows"] = rows
	data["Path"] = r.Path
	data["Label"] = r.Label
	if _, set := data["Form"]; !set {
		data["Form"] = r.blankForm()
	}
	if r.Decorate != nil {
		r.Decorate(c, rows, data)
	}
	r.Site.render(c, status, r.Template, r.Page, data)
}
