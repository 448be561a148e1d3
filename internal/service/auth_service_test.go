package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			SessionTTLHours: 8,
			BcryptCost:      bcrypt.MinCost,
		},
	}
}

func seedAccount(t *testing.T, members *fakeMemberRepo, email, password string, active bool) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:   "Test User",
		CPF:    "12345678901",
		Email:  &email,
		Role:   domain.RoleAdmin,
		Active: active,
	}
	if password != "" {
		hash, err := auth.HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		user.PasswordHash = &hash
	}
	require.NoError(t, members.CreateWithProfile(context.Background(), user, &domain.MemberProfile{Address: "Rua A"}, nil))
	return user
}

func assertAuthFailed(t *testing.T, err error) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "AUTHENTICATION_FAILED", domainErr.Code)
	assert.Equal(t, "invalid credentials", domainErr.Message)
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo(users)
	seedAccount(t, members, "admin@example.com", "s3cret", true)

	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users, MemberRepo: members})

	member, token, exp, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "admin@example.com", *member.Email)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), exp, 5*time.Second)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginFailuresCollapse(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo(users)
	seedAccount(t, members, "active@example.com", "s3cret", true)
	seedAccount(t, members, "inactive@example.com", "s3cret", false)
	seedAccount(t, members, "nopassword@example.com", "", true)

	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users, MemberRepo: members})
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown account", "nobody@example.com", "s3cret"},
		{"wrong password", "active@example.com", "wrong"},
		{"inactive account", "inactive@example.com", "s3cret"},
		{"no password set", "nopassword@example.com", "s3cret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, token, _, err := svc.Login(ctx, tc.email, tc.password)
			assert.Empty(t, token)
			assertAuthFailed(t, err)
		})
	}
}

func TestCurrentUserNotFound(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo(users)
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users, MemberRepo: members})

	_, err := svc.CurrentUser(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCurrentUserLoadsProfile(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo(users)
	user := seedAccount(t, members, "admin@example.com", "s3cret", true)

	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users, MemberRepo: members})

	member, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, member.Profile)
	assert.Equal(t, "Rua A", member.Profile.Address)
}
