// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package user registers accounts: it validates the request, mints an
// identifier and stores the encoded password.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/validation"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound = errors.New("user not found")
	// ErrIDConflict means the identifier is already in use.
	ErrIDConflict = errors.New("user id already exists")
	// ErrUsernameTaken means another account holds the username,
	// compared case-insensitively.
	ErrUsernameTaken = errors.New("username already exists")
)

// User is a registered account.
type User struct {
	ID       idgen.ID
	Username string
	Password credential.Encoded
	// UnverifiedEmail is the address supplied at registration.
	UnverifiedEmail string
	// VerifiedEmail is nil until the address is confirmed.
	VerifiedEmail *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateRequest holds the fields needed to register an account.
type CreateRequest struct {
	Username string
	Password credential.Secret
	Email    string
}

// Validate checks every field and returns a *validation.Error listing all
// failures, or nil.
func (r CreateRequest) Validate() error {
	var v validation.Validator
	v.Check("username", r.Username, validation.Username()).
		Check("password", string(r.Password), validation.Password()).
		Check("email", r.Email, validation.EmailAddress())
	return v.Err()
}

// Repository persists users.
type Repository interface {
	// ExistsByUsername reports whether username is taken, ignoring case.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create stores u. It returns ErrIDConflict or ErrUsernameTaken when a
	// uniqueness constraint rejects the row.
	Create(ctx context.Context, u *User) error
	// GetByID returns ErrNotFound when no user has id.
	GetByID(ctx context.Context, id idgen.ID) (*User, error)
}
