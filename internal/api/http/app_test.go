package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/missao-redime/church-service/internal/api/http/handlers"
	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/observability"
	"github.com/missao-redime/church-service/internal/repository"
	"github.com/missao-redime/church-service/internal/service"
)

// Repository stubs backing a full HTTP round-trip through middleware, guard
// and handlers. Only the login flow touches them.

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Delete(context.Context, string) error       { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		cp := *s.user
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email != nil && *s.user.Email == email {
		cp := *s.user
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByCPF(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

type stubMemberRepo struct {
	users *stubUserRepo
}

func (s *stubMemberRepo) CreateWithProfile(context.Context, *domain.User, *domain.MemberProfile, []string) error {
	return nil
}

func (s *stubMemberRepo) GetProfileByUserID(context.Context, string) (*domain.MemberProfile, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubMemberRepo) UpdateProfile(context.Context, *domain.MemberProfile) error { return nil }
func (s *stubMemberRepo) SetDepartments(context.Context, string, []string) error     { return nil }

func (s *stubMemberRepo) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Member{User: *user}, nil
}

func (s *stubMemberRepo) List(context.Context, repository.MemberListFilters) ([]domain.Member, error) {
	return nil, nil
}

func (s *stubMemberRepo) CountActive(context.Context) (int, error) { return 1, nil }

type stubDepartmentRepo struct{}

func (stubDepartmentRepo) Create(context.Context, *domain.Department) error { return nil }
func (stubDepartmentRepo) Update(context.Context, *domain.Department) error { return nil }
func (stubDepartmentRepo) GetByID(context.Context, string) (*domain.Department, error) {
	return nil, pgx.ErrNoRows
}
func (stubDepartmentRepo) List(context.Context) ([]domain.DepartmentWithStats, error) {
	return nil, nil
}
func (stubDepartmentRepo) ListActive(context.Context) ([]domain.Department, error) { return nil, nil }
func (stubDepartmentRepo) Count(context.Context) (int, error)                      { return 3, nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	email := "admin@example.com"
	users := &stubUserRepo{user: &domain.User{
		ID:           "admin-1",
		Name:         "Administrador",
		CPF:          "00000000000",
		Email:        &email,
		PasswordHash: &hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}}
	members := &stubMemberRepo{users: users}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:       "test-secret",
		SessionTTLHours: 8,
		BcryptCost:      bcrypt.MinCost,
	}}

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, MemberRepo: members})
	memberService := service.NewMemberService(cfg, service.MemberDependencies{UserRepo: users, MemberRepo: members})
	departmentService := service.NewDepartmentService(cfg, stubDepartmentRepo{})

	tokens := authService.TokenManager()
	cookies := auth.NewSessionCookies(false)
	logger := zap.NewNop()

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:        handlers.NewAuthHandler(authService, cookies),
		Members:     handlers.NewMembersHandler(memberService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		Donations:   handlers.NewDonationsHandler(service.NewDonationService(nil, nil), tokens),
		Prayer:      handlers.NewPrayerHandler(service.NewPrayerService(nil, nil)),
		Content:     handlers.NewContentHandler(service.NewContentService(nil, nil, logger)),
		Admin:       handlers.NewAdminHandler(memberService, departmentService),
		Guard:       auth.NewGuard(tokens),
		Tokens:      tokens,
	})
	return app
}

func doLogin(t *testing.T, app *fiber.App, email, password string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == auth.CookieName {
			return ck
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	resp := doLogin(t, app, "admin@example.com", "s3cret")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	ck := sessionCookie(resp)
	require.NotNil(t, ck)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.Greater(t, ck.MaxAge, 0)

	payload := decodeBody(t, resp)
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password", "credentials must never be serialized")
}

func TestLoginFailureLeavesNoCookie(t *testing.T) {
	app := newTestApp(t)

	resp := doLogin(t, app, "admin@example.com", "wrong")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	payload := decodeBody(t, resp)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AUTHENTICATION_FAILED", errObj["code"])
	assert.Equal(t, "invalid credentials", errObj["message"])
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doLogin(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	payload := decodeBody(t, resp)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)

	// login and capture the session cookie
	loginResp := doLogin(t, app, "admin@example.com", "s3cret")
	loginResp.Body.Close()
	ck := sessionCookie(loginResp)
	require.NotNil(t, ck)

	withSession := func(method, path string) *http.Response {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	// the session opens the admin area
	dash := withSession(http.MethodGet, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, dash.StatusCode)
	stats := decodeBody(t, dash)
	dash.Body.Close()
	assert.Equal(t, "dashboard", stats["page"])

	// /api/auth/me resolves the principal
	me := withSession(http.MethodGet, "/api/auth/me")
	assert.Equal(t, http.StatusOK, me.StatusCode)
	me.Body.Close()

	// logout clears the cookie
	logout := withSession(http.MethodPost, "/api/auth/logout")
	assert.Equal(t, http.StatusOK, logout.StatusCode)
	cleared := sessionCookie(logout)
	logout.Body.Close()
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// without the cookie the admin area redirects to login again
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func TestMeWithoutSession(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	payload := decodeBody(t, resp)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT_AUTHENTICATED", errObj["code"])
}

func TestDataEndpointsEnforceRoles(t *testing.T) {
	app := newTestApp(t)

	// anonymous requests to guarded data endpoints get status codes
	for _, path := range []string{"/api/members/", "/api/donations", "/api/prayer-requests"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("GET %s", path))
	}
}
