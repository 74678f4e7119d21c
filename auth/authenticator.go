// Package auth file: auth/authenticator.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"catering-admin/apperr"
	"catering-admin/models"

	"golang.org/x/crypto/bcrypt"
)

// AdminFinder looks admins up by email.
type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("catering-admin-dummy"), bcrypt.DefaultCost)

// Authenticator checks email/password pairs against the admin table.
type Authenticator struct {
	admins AdminFinder
}

// NewAuthenticator creates an Authenticator backed by admins.
func NewAuthenticator(admins AdminFinder) *Authenticator {
	return &Authenticator{admins: admins}
}

// Authenticate returns the session record for valid credentials.
// Unknown email and wrong password both yield apperr.ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, apperr.ErrInvalidCredentials
	}

	admin, err := a.admins.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !admin.CheckPassword(password) {
		return nil, apperr.ErrInvalidCredentials
	}
	s := admin.Session()
	return &s, nil
}
