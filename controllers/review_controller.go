// Package controllers file: controllers/review_controller.go
package controllers

import (
	"strconv"
	"strings"

	"catering-admin/models"
	"catering-admin/services"
)

// ReviewForm is the review create/edit form.
type ReviewForm struct {
	ClientName string `form:"client_name" validate:"notblank"`
	ReviewText string `form:"review_text" validate:"notblank"`
	Rating     string `form:"rating" validate:"required,oneof=1 2 3 4 5"`
}

func (f *ReviewForm) Validate(bool) error { return services.ValidateForm(f) }

func (f *ReviewForm) Row() *models.Review {
	rating, _ := strconv.Atoi(strings.TrimSpace(f.Rating))
	return &models.Review{
		ClientName: strings.TrimSpace(f.ClientName),
		ReviewText: strings.TrimSpace(f.ReviewText),
		Rating:     rating,
	}
}

func (f *ReviewForm) Patch() map[string]any {
	r := f.Row()
	return map[string]any{
		"client_name": r.ClientName,
		"review_text": r.ReviewText,
		"rating":      r.Rating,
	}
}

// NewReviewController builds the reviews screen.
func NewReviewController(site *Site, gw Gateway[models.Review], inflight *services.InFlight) *Resource[models.Review, *ReviewForm] {
	return &Resource[models.Review, *ReviewForm]{
		Path:     "/reviews",
		Label:    "Review",
		Page:     "Reviews",
		Template: "reviews.html",
		Site:     site,
		Gateway:  gw,
		InFlight: inflight,
		NewForm:  func() *ReviewForm { return &ReviewForm{} },
		FormOf: func(r *models.Review) *ReviewForm {
			return &ReviewForm{ClientName: r.ClientName, ReviewText: r.ReviewText, Rating: strconv.Itoa(r.Rating)}
		},
		BlankForm: func() *ReviewForm { return &ReviewForm{Rating: "5"} },
	}
}
