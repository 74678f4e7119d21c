// Package services file: services/deeplink.go
package services

import (
	"fmt"
	"net/url"
	"strings"

	"catering-admin/models"
)

// ContactLinks are the outbound links shown next to an inquiry.
type ContactLinks struct {
	WhatsApp string
	Phone    string
	Email    string
}

// encodeComponent escapes s like a URI component (spaces as %20).
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// digitsOnly strips everything but 0-9 from a phone number.
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink returns the wa.me link with the greeting pre-filled.
// Event inquiries mention the event type.
func WhatsAppLink(inq models.Inquiry, business string) string {
	text := fmt.Sprintf("Hello %s, thank you for contacting %s! How can we assist you today?", inq.Name, business)
	if inq.IsEvent() {
		text = fmt.Sprintf("Hello %s, thank you for your %s inquiry with %s! How can we assist you today?", inq.Name, inq.EventType, business)
	}
	return "https://wa.me/" + digitsOnly(inq.Phone) + "?text=" + encodeComponent(text)
}

// PhoneLink returns the tel: link.
func PhoneLink(inq models.Inquiry) string {
	return "tel:" + inq.Phone
}

// EmailLink returns the mailto: link with a reply subject and body.
func EmailLink(inq models.Inquiry, business string) string {
	subject := fmt.Sprintf("Re: Your inquiry - %s", business)
	body := fmt.Sprintf("Dear %s,\n\nThank you for contacting %s. We have received your message and will get back to you soon.\n\nBest regards,\n%s Team",
		inq.Name, business, business)

	if inq.IsEvent() {
		subject = fmt.Sprintf("Re: Your %s inquiry - %s", inq.EventType, business)
		dateInfo := ""
		if inq.EventDate != nil {
			dateInfo = "\n\nEvent Date: " + inq.EventDate.Format("2006-01-02")
		}
		body = fmt.Sprintf("Dear %s,\n\nThank you for your %s inquiry with %s. We have received your request and will get back to you soon.%s\n\nBest regards,\n%s Team",
			inq.Name, inq.EventType, business, dateInfo, business)
	}
	return "mailto:" + inq.Email + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// Links builds all three links. Links for missing contact fields are empty.
func Links(inq models.Inquiry, business string) ContactLinks {
	var l ContactLinks
	if digitsOnly(inq.Phone) != "" {
		l.WhatsApp = WhatsAppLink(inq, business)
		l.Phone = PhoneLink(inq)
	}
	if inq.Email != "" {
		l.Email = EmailLink(inq, business)
	}
	return l
}
