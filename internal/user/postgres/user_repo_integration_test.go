// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

//go:build integration

package postgres_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/user"
	"github.com/ppalli/ppalli/internal/user/postgres"
)

var _ = Describe("UserRepository", func() {
	var (
		ctx  context.Context
		repo *postgres.UserRepository
		svc  *user.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = postgres.NewUserRepository(testPool)
		svc = user.NewService(repo, credential.NewDefaultEncoder())

		DeferCleanup(func() {
			_, err := testPool.Exec(ctx, `TRUNCATE users CASCADE`)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	It("round-trips a user created by the service", func() {
		created, err := svc.Create(ctx, user.CreateRequest{
			Username: "testuser",
			Password: "d1SDUabmrSbhWz@",
			Email:    "testuser@example.com",
		})
		Expect(err).NotTo(HaveOccurred())

		stored, err := repo.GetByID(ctx, created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Username).To(Equal("testuser"))
		Expect(stored.UnverifiedEmail).To(Equal("testuser@example.com"))
		Expect(stored.VerifiedEmail).To(BeNil())
		Expect(stored.Password).To(Equal(created.Password))
		Expect(stored.CreatedAt).To(BeTemporally("~", created.CreatedAt, time.Millisecond))
	})

	It("finds usernames case-insensitively", func() {
		_, err := svc.Create(ctx, user.CreateRequest{Username: "already", Password: "d7QaN4Os@oydTPtQLg", Email: "already@example.com"})
		Expect(err).NotTo(HaveOccurred())

		exists, err := repo.ExistsByUsername(ctx, "ALREADY")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("maps constraint violations to sentinels", func() {
		now := time.Now().UTC()
		first := &user.User{ID: idgen.Next(), Username: "Carol", Password: "{v1}$x", CreatedAt: now, UpdatedAt: now}
		Expect(repo.Create(ctx, first)).To(Succeed())

		sameID := *first
		sameID.Username = "dave"
		Expect(repo.Create(ctx, &sameID)).To(MatchError(user.ErrIDConflict))

		sameName := *first
		sameName.ID = idgen.Next()
		sameName.Username = "carol"
		Expect(repo.Create(ctx, &sameName)).To(MatchError(user.ErrUsernameTaken))
	})

	It("returns ErrNotFound for unknown ids", func() {
		_, err := repo.GetByID(ctx, idgen.Next())
		Expect(err).To(MatchError(user.ErrNotFound))
	})
})
