// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/ppalli/ppalli/internal/apierr"
	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
)

// DefaultMaxIDAttempts is how many identifiers Create tries before giving up.
const DefaultMaxIDAttempts = 3

// IDSource mints identifiers.
type IDSource interface {
	Next() idgen.ID
}

// Service creates users.
type Service struct {
	repo        Repository
	encoder     *credential.Encoder
	ids         IDSource
	now         func() time.Time
	maxAttempts uint64
	retryDelay  time.Duration
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDSource replaces the identifier generator.
func WithIDSource(ids IDSource) Option {
	return func(s *Service) { s.ids = ids }
}

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxIDAttempts sets how many identifiers Create tries. Values below 1
// are treated as 1.
func WithMaxIDAttempts(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.maxAttempts = uint64(n)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service backed by repo and encoder.
func NewService(repo Repository, encoder *credential.Encoder, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		encoder:     encoder,
		ids:         idgen.Default,
		now:         time.Now,
		maxAttempts: DefaultMaxIDAttempts,
		retryDelay:  time.Millisecond,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req and stores a new user.
//
// Errors:
//   - *validation.Error when a field fails its constraints
//   - *apierr.BusinessError DUPLICATE_USERNAME when the name is taken
//   - *apierr.BusinessError MAX_TRY_ID_GENERATION when every minted id
//     collided
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, oops.Code("USER_CREATE_FAILED").
			With("operation", "check username").
			With("username", req.Username).
			Wrap(err)
	}
	if exists {
		return nil, apierr.DuplicateUsername(req.Username)
	}

	encoded, err := s.encoder.Encode(req.Password)
	if err != nil {
		return nil, oops.Code("USER_CREATE_FAILED").
			With("operation", "encode password").
			Wrap(err)
	}

	now := s.now().UTC()
	u := &User{
		Username:        req.Username,
		Password:        encoded,
		UnverifiedEmail: req.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	backoff := retry.WithMaxRetries(s.maxAttempts-1, retry.NewConstant(s.retryDelay))
	attempts := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		u.ID = s.ids.Next()
		if err := s.repo.Create(ctx, u); err != nil {
			if errors.Is(err, ErrIDConflict) {
				s.logger.WarnContext(ctx, "user id collided", "id", u.ID.Int64(), "attempt", attempts)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "user created", "id", u.ID.Int64(), "username", u.Username)
		return u, nil
	case errors.Is(err, ErrIDConflict):
		return nil, apierr.MaxTryIDGeneration(attempts).Wrap(err)
	case errors.Is(err, ErrUsernameTaken):
		return nil, apierr.DuplicateUsername(req.Username).Wrap(err)
	default:
		return nil, oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", req.Username).
			Wrap(err)
	}
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id idgen.ID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").With("id", id.Int64()).Wrap(err)
	}
	return u, nil
}
