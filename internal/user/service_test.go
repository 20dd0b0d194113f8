// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package user_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ppalli/ppalli/internal/apierr"
	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/user"
	"github.com/ppalli/ppalli/internal/user/mocks"
	"github.com/ppalli/ppalli/internal/validation"
	"github.com/ppalli/ppalli/pkg/errutil"
)

func newEncoder(t *testing.T) *credential.Encoder {
	t.Helper()
	alg, err := credential.NewArgon2id(credential.Argon2idParams{
		SaltLength: 16, KeyLength: 32, Parallelism: 1, Memory: 1024, Iterations: 1,
	})
	require.NoError(t, err)
	reg, err := credential.NewRegistry(map[string]credential.Algorithm{"v1": alg})
	require.NoError(t, err)
	enc, err := credential.NewEncoder(reg, "v1")
	require.NoError(t, err)
	return enc
}

// sequence hands out fixed ids in order.
type sequence struct {
	ids []idgen.ID
	n   int
}

func (s *sequence) Next() idgen.ID {
	id := s.ids[s.n%len(s.ids)]
	s.n++
	return id
}

var validRequest = user.CreateRequest{
	Username: "testuser",
	Password: "d1SDUabmrSbhWz@",
	Email:    "testuser@example.com",
}

func TestCreateRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validRequest.Validate())
	})

	t.Run("collects every field", func(t *testing.T) {
		err := user.CreateRequest{Username: "", Password: "short", Email: ""}.Validate()

		fields := errutil.AssertViolatedFields(t, err)
		assert.Equal(t, map[string]int{"username": 3, "password": 3, "email": 1}, fields)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stores user with encoded password", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		enc := newEncoder(t)
		svc := user.NewService(repo, enc,
			user.WithIDSource(&sequence{ids: []idgen.ID{42}}),
			user.WithClock(func() time.Time { return now }),
		)

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, nil)
		var stored *user.User
		repo.EXPECT().Create(ctx, mock.AnythingOfType("*user.User")).
			Run(func(_ context.Context, u *user.User) { stored = u }).
			Return(nil)

		u, err := svc.Create(ctx, validRequest)
		require.NoError(t, err)

		assert.Same(t, stored, u)
		assert.Equal(t, idgen.ID(42), u.ID)
		assert.Equal(t, "testuser", u.Username)
		assert.Equal(t, "testuser@example.com", u.UnverifiedEmail)
		assert.Nil(t, u.VerifiedEmail)
		assert.Equal(t, now, u.CreatedAt)
		assert.True(t, strings.HasPrefix(u.Password.Raw(), "{v1}$argon2id$"))
		assert.True(t, enc.Matches(validRequest.Password, u.Password))
	})

	t.Run("validation failure skips repository", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t))

		req := validRequest
		req.Username = "ab"
		_, err := svc.Create(ctx, req)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Size", verr.Violations[0].Constraint.Kind())
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t))

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(true, nil)

		_, err := svc.Create(ctx, validRequest)

		be := errutil.AssertBusinessError(t, err, http.StatusBadRequest, apierr.CodeDuplicateUsername)
		assert.Equal(t, map[string]any{"username": "testuser"}, be.Detail)
	})

	t.Run("username taken between check and insert", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t))

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, nil)
		repo.EXPECT().Create(ctx, mock.Anything).Return(user.ErrUsernameTaken)

		_, err := svc.Create(ctx, validRequest)

		errutil.AssertBusinessError(t, err, http.StatusBadRequest, apierr.CodeDuplicateUsername)
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})

	t.Run("id collision retries with a fresh id", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t),
			user.WithIDSource(&sequence{ids: []idgen.ID{1, 2}}),
		)

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, nil)
		var tried []idgen.ID
		repo.EXPECT().Create(ctx, mock.Anything).
			RunAndReturn(func(_ context.Context, u *user.User) error {
				tried = append(tried, u.ID)
				if u.ID == 1 {
					return user.ErrIDConflict
				}
				return nil
			}).Times(2)

		u, err := svc.Create(ctx, validRequest)
		require.NoError(t, err)
		assert.Equal(t, idgen.ID(2), u.ID)
		assert.Equal(t, []idgen.ID{1, 2}, tried)
	})

	t.Run("id collisions exhaust attempts", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t),
			user.WithIDSource(&sequence{ids: []idgen.ID{7}}),
			user.WithMaxIDAttempts(3),
		)

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, nil)
		repo.EXPECT().Create(ctx, mock.Anything).Return(user.ErrIDConflict).Times(3)

		_, err := svc.Create(ctx, validRequest)

		errutil.AssertBusinessError(t, err, http.StatusInternalServerError, apierr.CodeMaxTryIDGeneration)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t))

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, errors.New("connection refused"))

		_, err := svc.Create(ctx, validRequest)
		errutil.AssertErrorCode(t, err, "USER_CREATE_FAILED")
		errutil.AssertErrorContext(t, err, "operation", "check username")

		var be *apierr.BusinessError
		assert.False(t, errors.As(err, &be), "infrastructure errors are not business errors")
	})

	t.Run("insert failure is wrapped", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		svc := user.NewService(repo, newEncoder(t))

		repo.EXPECT().ExistsByUsername(ctx, "testuser").Return(false, nil)
		repo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := svc.Create(ctx, validRequest)
		errutil.AssertErrorCode(t, err, "USER_CREATE_FAILED")
		errutil.AssertErrorContext(t, err, "operation", "insert user")
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		want := &user.User{ID: 9, Username: "someone"}
		repo.EXPECT().GetByID(ctx, idgen.ID(9)).Return(want, nil)

		got, err := user.NewService(repo, newEncoder(t)).Get(ctx, 9)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("not found keeps sentinel", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		repo.EXPECT().GetByID(ctx, idgen.ID(9)).Return(nil, user.ErrNotFound)

		_, err := user.NewService(repo, newEncoder(t)).Get(ctx, 9)
		assert.ErrorIs(t, err, user.ErrNotFound)
		errutil.AssertErrorCode(t, err, "USER_GET_FAILED")
	})
}
