package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// AuthService coordinates the login flow. The account row is read here and
// nowhere else; after a token is issued the session authority trusts it
// until expiry.
type AuthService struct {
	users    repository.UserRepository
	members  repository.MemberRepository
	tokenMgr *auth.TokenManager
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	MemberRepo repository.MemberRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		members:  deps.MemberRepo,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
	}
}

// Login authenticates by email and password and issues a session token.
// Unknown account, missing password hash, inactive account and wrong
// password all collapse into the same authentication error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Member, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthenticationError()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if user.PasswordHash == nil || !user.Active {
		return nil, "", time.Time{}, apperrors.NewAuthenticationError()
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthenticationError()
	}

	var claimEmail string
	if user.Email != nil {
		claimEmail = *user.Email
	}
	token, exp, err := s.tokenMgr.Issue(user.ID, user.Name, user.Role, claimEmail)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	member, err := s.members.GetMember(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return member, token, exp, nil
}

// CurrentUser loads the full profile for an authenticated principal,
// including departments and led departments.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.Member, error) {
	member, err := s.members.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// TokenManager exposes the underlying token manager for guard wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
