// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/user"
)

// UserService is the subset of user.Service the handlers need.
type UserService interface {
	Create(ctx context.Context, req user.CreateRequest) (*user.User, error)
	Get(ctx context.Context, id idgen.ID) (*user.User, error)
}

// Deps are the collaborators of NewHandler.
type Deps struct {
	Users  UserService
	Logger *slog.Logger
}

// NewHandler builds the public HTTP API.
func NewHandler(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	er := NewErrorRouter(logger)
	h := &userHandler{users: deps.Users}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(Recover(er))
	r.Use(middleware.Heartbeat("/healthz"))

	r.NotFound(er.StatusHandler(http.StatusNotFound).ServeHTTP)
	r.MethodNotAllowed(er.StatusHandler(http.StatusMethodNotAllowed).ServeHTTP)

	r.Route("/users", func(r chi.Router) {
		r.Method(http.MethodPost, "/", er.Handle(h.create))
		r.Method(http.MethodGet, "/{id}", er.Handle(h.get))
	})
	return r
}

type userHandler struct {
	users UserService
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{ID: u.ID.Int64(), Username: u.Username, Email: u.VerifiedEmail}
}

func (h *userHandler) create(w http.ResponseWriter, r *http.Request) error {
	var body createUserRequest
	if err := DecodeJSON(w, r, &body); err != nil {
		return err
	}
	u, err := h.users.Create(r.Context(), user.CreateRequest{
		Username: body.Username,
		Password: credential.Secret(body.Password),
		Email:    body.Email,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, newUserResponse(u))
	return nil
}

func (h *userHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, ok := parseUserID(chi.URLParam(r, "id"))
	if !ok {
		return &StatusError{Status: http.StatusNotFound}
	}
	u, err := h.users.Get(r.Context(), id)
	if errors.Is(err, user.ErrNotFound) {
		return &StatusError{Status: http.StatusNotFound, Err: err}
	}
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, newUserResponse(u))
	return nil
}

// parseUserID accepts the decimal form returned by the API and the
// Crockford form printed by the CLI.
func parseUserID(s string) (idgen.ID, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return idgen.ID(n), true
	}
	id, err := idgen.Parse(s)
	if err != nil {
		return 0, false
	}
	return id, true
}
