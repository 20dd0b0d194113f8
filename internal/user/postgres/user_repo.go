// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package postgres implements user.Repository on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/store"
	"github.com/ppalli/ppalli/internal/user"
)

// Constraint names from the migrations.
const (
	constraintUsersPkey     = "users_pkey"
	constraintUsernameLower = "users_username_lower_key"
)

// UserRepository stores users across the users, credential and
// verification tables.
type UserRepository struct {
	pool store.Pool
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(pool store.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// ExistsByUsername reports whether username is taken, ignoring case.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, oops.Code("USER_EXISTS_FAILED").With("username", username).Wrap(err)
	}
	return exists, nil
}

// Create inserts the user, its password and its unverified email in one
// transaction.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").With("operation", "begin").Wrap(err)
	}

	if err := insertUser(ctx, tx, u); err != nil {
		_ = tx.Rollback(ctx) //nolint:errcheck // insert error wins
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("USER_CREATE_FAILED").With("operation", "commit").With("id", u.ID.Int64()).Wrap(err)
	}
	return nil
}

func insertUser(ctx context.Context, tx pgx.Tx, u *user.User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, username, verified_email, created_at, last_modified_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID.Int64(), u.Username, u.VerifiedEmail, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case constraintUsersPkey:
				return oops.Code("USER_ID_CONFLICT").With("id", u.ID.Int64()).Wrap(user.ErrIDConflict)
			case constraintUsernameLower:
				return oops.Code("USER_USERNAME_TAKEN").With("username", u.Username).Wrap(user.ErrUsernameTaken)
			}
		}
		return oops.Code("USER_CREATE_FAILED").With("operation", "insert user").With("id", u.ID.Int64()).Wrap(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_password_authentications (user_id, encrypted_password, created_at, last_modified_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID.Int64(), u.Password.Raw(), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").With("operation", "insert password").With("id", u.ID.Int64()).Wrap(err)
	}

	if u.UnverifiedEmail != "" {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_verifications (user_id, unverified_email, created_at)
			VALUES ($1, $2, $3)
		`, u.ID.Int64(), u.UnverifiedEmail, u.CreatedAt)
		if err != nil {
			return oops.Code("USER_CREATE_FAILED").With("operation", "insert verification").With("id", u.ID.Int64()).Wrap(err)
		}
	}
	return nil
}

// GetByID returns the user with id and its most recent unverified email.
func (r *UserRepository) GetByID(ctx context.Context, id idgen.ID) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.verified_email, u.created_at, u.last_modified_at,
		       p.encrypted_password,
		       COALESCE((SELECT v.unverified_email FROM user_verifications v
		                 WHERE v.user_id = u.id ORDER BY v.id DESC LIMIT 1), '')
		FROM users u
		JOIN user_password_authentications p ON p.user_id = u.id
		WHERE u.id = $1
	`, id.Int64())

	var (
		u       user.User
		rawID   int64
		encoded string
	)
	err := row.Scan(&rawID, &u.Username, &u.VerifiedEmail, &u.CreatedAt, &u.UpdatedAt, &encoded, &u.UnverifiedEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").With("id", id.Int64()).Wrap(user.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").With("id", id.Int64()).Wrap(err)
	}
	u.ID = idgen.ID(rawID)
	u.Password = credential.Encoded(encoded)
	return &u, nil
}
