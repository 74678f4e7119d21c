// Package controllers file: controllers/menu_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"catering-admin/logger"
	"catering-admin/models"
	"catering-admin/services"
	"catering-admin/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MenuItemForm is the menu item create/edit form.
// Checkboxes post "true"; an unchecked box posts nothing.
type MenuItemForm struct {
	HindiName   string `form:"hindi_name" validate:"notblank"`
	EnglishName string `form:"english_name"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required,money"`
	Category    string `form:"category"`
	Available   bool   `form:"available"`

	ImageURL     string `form:"-"`
	imageChanged bool
}

func (f *MenuItemForm) Validate(bool) error { return services.ValidateForm(f) }

func (f *MenuItemForm) price() decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(f.Price))
	return d.Round(2)
}

func (f *MenuItemForm) Row() *models.MenuItem {
	return &models.MenuItem{
		HindiName:   strings.TrimSpace(f.HindiName),
		EnglishName: strings.TrimSpace(f.EnglishName),
		Description: strings.TrimSpace(f.Description),
		Price:       f.price(),
		Category:    strings.TrimSpace(f.Category),
		Available:   f.Available,
		ImageURL:    f.ImageURL,
	}
}

// Patch keeps the stored image unless a new one was uploaded.
func (f *MenuItemForm) Patch() map[string]any {
	m := f.Row()
	patch := map[string]any{
		"hindi_name":   m.HindiName,
		"english_name": m.EnglishName,
		"description":  m.Description,
		"price":        m.Price,
		"category":     m.Category,
		"available":    m.Available,
	}
	if f.imageChanged {
		patch["image"] = f.ImageURL
	}
	return patch
}

func (f *MenuItemForm) ImageField() string          { return "image" }
func (f *MenuItemForm) ImageBucket() storage.Bucket { return storage.BucketMenuImages }
func (f *MenuItemForm) SetImageURL(url string) {
	f.ImageURL = url
	f.imageChanged = true
}

// MenuController serves the menu screen and the availability toggle.
type MenuController struct {
	*Resource[models.MenuItem, *MenuItemForm]
}

// NewMenuController builds the menu screen.
func NewMenuController(site *Site, gw Gateway[models.MenuItem], uploads *services.UploadPipeline, inflight *services.InFlight) *MenuController {
	return &MenuController{Resource: &Resource[models.MenuItem, *MenuItemForm]{
		Path:     "/menu",
		Label:    "Menu item",
		Page:     "Menu Items",
		Template: "menu.html",
		Site:     site,
		Gateway:  gw,
		Uploads:  uploads,
		InFlight: inflight,
		NewForm:  func() *MenuItemForm { return &MenuItemForm{} },
		FormOf: func(m *models.MenuItem) *MenuItemForm {
			return &MenuItemForm{
				HindiName:   m.HindiName,
				EnglishName: m.EnglishName,
				Description: m.Description,
				Price:       m.Price.StringFixed(2),
				Category:    m.Category,
				Available:   m.Available,
				ImageURL:    m.ImageURL,
			}
		},
		BlankForm: func() *MenuItemForm { return &MenuItemForm{Available: true} },
		Decorate: func(c *gin.Context, rows []models.MenuItem, data gin.H) {
			data["AvailableCount"] = services.CountAvailable(rows)
			data["TotalCount"] = len(rows)
		},
	}}
}

// ToggleAvailability flips the availability posted by the list page.
// The form carries the value shown to the admin, so a stale page flips
// what the admin saw.
func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	id := c.Param("id")
	next := c.PostForm("available") != "true"

	if err := mc.Gateway.Update(c.Request.Context(), id, map[string]any{"available": next}); err != nil {
		logger.Error.Printf("[ToggleAvailability] %s: %v", id, err)
		n := errorNotice(err)
		n.Message = "Failed to update menu item"
		setNotice(c, *n)
		c.Redirect(http.StatusSeeOther, mc.Path)
		return
	}

	state := "disabled"
	if next {
		state = "enabled"
	}
	logger.Info.Printf("[ToggleAvailability] Menu item %s %s", id, state)
	setNotice(c, Notice{Kind: NoticeSuccess, Title: fmt.Sprintf("Menu item %s successfully", state)})
	c.Redirect(http.StatusSeeOther, mc.Path)
}
