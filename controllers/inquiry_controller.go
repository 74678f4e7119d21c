// Package controllers file: controllers/inquiry_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"catering-admin/logger"
	"catering-admin/models"
	"catering-admin/services"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const dateLayout = "2006-01-02"

// InquiryForm is the inquiry create/edit form. Event fields are optional.
type InquiryForm struct {
	Name       string            `form:"name" validate:"notblank"`
	Email      string            `form:"email" validate:"required,email"`
	Phone      string            `form:"phone"`
	EventType  string            `form:"event_type"`
	EventDate  string            `form:"event_date" validate:"omitempty,datetime=2006-01-02"`
	GuestCount string            `form:"guest_count" validate:"omitempty,positiveint"`
	Message    string            `form:"message"`
	Generation models.Generation `form:"-"`
}

func (f *InquiryForm) Validate(bool) error { return services.ValidateForm(f) }

func (f *InquiryForm) Row() *models.Inquiry {
	inq := &models.Inquiry{
		Name:      strings.TrimSpace(f.Name),
		Email:     models.NormalizeEmail(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		EventType: strings.TrimSpace(f.EventType),
		Message:   strings.TrimSpace(f.Message),
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(f.EventDate)); err == nil {
		inq.EventDate = &d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.GuestCount)); err == nil {
		inq.GuestCount = &n
	}
	return inq
}

func (f *InquiryForm) Patch() map[string]any {
	inq := f.Row()
	return map[string]any{
		"name":        inq.Name,
		"email":       inq.Email,
		"phone":       inq.Phone,
		"event_type":  inq.EventType,
		"event_date":  inq.EventDate,
		"guest_count": inq.GuestCount,
		"message":     inq.Message,
	}
}

// inquiryFormOf prefills the form from a stored inquiry.
func inquiryFormOf(inq *models.Inquiry) *InquiryForm {
	f := &InquiryForm{
		Name:       inq.Name,
		Email:      inq.Email,
		Phone:      inq.Phone,
		EventType:  inq.EventType,
		Message:    inq.Message,
		Generation: inq.Generation,
	}
	if inq.EventDate != nil {
		f.EventDate = inq.EventDate.Format(dateLayout)
	}
	if inq.GuestCount != nil {
		f.GuestCount = strconv.Itoa(*inq.GuestCount)
	}
	return f
}

// InquiryController serves the inquiries screen and the WhatsApp QR code.
type InquiryController struct {
	*Resource[models.Inquiry, *InquiryForm]
	qrEncoder services.QRCodeEncoder
}

// NewInquiryController builds the inquiries screen.
func NewInquiryController(site *Site, gw Gateway[models.Inquiry], inflight *services.InFlight) *InquiryController {
	ic := &InquiryController{qrEncoder: qrcode.Encode}
	ic.Resource = &Resource[models.Inquiry, *InquiryForm]{
		Path:     "/inquiries",
		Label:    "Inquiry",
		Page:     "Inquiries",
		Template: "inquiries.html",
		Site:     site,
		Gateway:  gw,
		InFlight: inflight,
		NewForm:  func() *InquiryForm { return &InquiryForm{} },
		FormOf:   inquiryFormOf,
		Decorate: func(c *gin.Context, rows []models.Inquiry, data gin.H) {
			links := make(map[string]services.ContactLinks, len(rows))
			for _, inq := range rows {
				links[inq.ID] = services.Links(inq, site.BusinessName)
			}
			data["Links"] = links
		},
	}
	return ic
}

// WhatsAppQR serves a PNG QR code of the inquiry's WhatsApp link.
func (ic *InquiryController) WhatsAppQR(c *gin.Context) {
	inq, err := ic.Gateway.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Warn.Printf("[WhatsAppQR] Inquiry %s: %v", c.Param("id"), err)
		c.String(http.StatusNotFound, "Inquiry not found")
		return
	}
	link := services.Links(*inq, ic.Site.BusinessName).WhatsApp
	if link == "" {
		c.String(http.StatusNotFound, "Inquiry has no phone number")
		return
	}

	png, err := services.GenerateQRCode(link, 256, ic.qrEncoder)
	if err != nil {
		logger.Error.Printf("[WhatsAppQR] Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Header("Content-Disposition", "inline; filename=\"whatsapp-qr.png\"")
	c.Data(http.StatusOK, "image/png", png)
}
