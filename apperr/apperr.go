// Package apperr defines the error taxonomy shared by the gateway, the
// upload pipeline and the controllers.
// File: apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ------------------- sentinel errors -------------------

var (
	// ErrInvalidCredentials deliberately does not say which half was wrong.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidFileType    = errors.New("Please select an image file")
	ErrFileTooLarge       = errors.New("Image must be 5 MB or smaller")
	ErrSubmitInProgress   = errors.New("A save is already in progress, please wait")
	ErrSelfDelete         = errors.New("You cannot delete your own account")
	ErrLastAdmin          = errors.New("At least one admin account must remain")
	ErrNotFound           = errors.New("The record no longer exists")
)

// ------------------- validation -------------------

// ValidationError is a client-side failure found before any gateway call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failing field of one form.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Fields maps field name to message for template rendering.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

// Invalid builds a single-field ValidationErrors.
func Invalid(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// ------------------- gateway / storage failures -------------------

// Kind names the operation that failed against an external collaborator.
type Kind string

const (
	KindFetch  Kind = "fetch"
	KindSave   Kind = "save"
	KindDelete Kind = "delete"
	KindUpload Kind = "upload"
)

// OpError wraps a network or backend failure with the operation and entity involved.
type OpError struct {
	Kind   Kind
	Entity string
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Entity, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Fetch, Save, Delete and Upload wrap err as the matching OpError kind.
func Fetch(entity string, err error) error  { return &OpError{Kind: KindFetch, Entity: entity, Err: err} }
func Save(entity string, err error) error   { return &OpError{Kind: KindSave, Entity: entity, Err: err} }
func Delete(entity string, err error) error { return &OpError{Kind: KindDelete, Entity: entity, Err: err} }
func Upload(entity string, err error) error { return &OpError{Kind: KindUpload, Entity: entity, Err: err} }

// PartialError marks a read that returned usable rows but missed some of them.
type PartialError struct {
	Err error
}

func (e *PartialError) Error() string { return "partial result: " + e.Err.Error() }

func (e *PartialError) Unwrap() error { return e.Err }

// Partial wraps err as a PartialError.
func Partial(err error) error { return &PartialError{Err: err} }

// IsPartial reports whether the rows returned alongside err can still be shown.
func IsPartial(err error) bool {
	var p *PartialError
	return errors.As(err, &p)
}

// IsKind reports whether err is an OpError of kind k.
func IsKind(err error, k Kind) bool {
	var op *OpError
	return errors.As(err, &op) && op.Kind == k
}

// ------------------- presentation -------------------

// Message converts err into the text shown in a notification.
func Message(err error) string {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return "Please correct the highlighted fields"
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return single.Message
	}

	for _, known := range []error{
		ErrInvalidCredentials, ErrInvalidFileType, ErrFileTooLarge,
		ErrSubmitInProgress, ErrSelfDelete, ErrLastAdmin, ErrNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	var op *OpError
	if errors.As(err, &op) {
		switch op.Kind {
		case KindFetch:
			return "Failed to fetch " + op.Entity
		case KindSave:
			return "Failed to save " + op.Entity
		case KindDelete:
			return "Failed to delete " + op.Entity
		case KindUpload:
			return "Failed to upload image"
		}
	}
	return "An unexpected error occurred"
}

// Status maps err to the HTTP status used when a form is re-rendered.
func Status(err error) int {
	var ve ValidationErrors
	var single *ValidationError
	switch {
	case errors.As(err, &ve), errors.As(err, &single),
		errors.Is(err, ErrInvalidFileType), errors.Is(err, ErrFileTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrSelfDelete), errors.Is(err, ErrLastAdmin):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	var op *OpError
	if errors.As(err, &op) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
