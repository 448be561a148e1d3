package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/domain"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

const (
	loginPath     = "/auth/login"
	dashboardPath = "/admin/dashboard"
)

// Guard classifies page routes and enforces authentication before handler
// logic runs. Decisions are made from the verified token alone; the guard
// never touches the database.
//
// Classification:
//   - /auth/login: a valid session redirects to the dashboard, otherwise pass.
//   - /admin/**: requires a valid session, else redirect to the login page.
//     /admin/departments requires ADMIN and /admin/members requires LEADER or
//     above; under-privileged sessions are redirected to the dashboard rather
//     than rejected, so an authenticated user never hits a dead end.
//   - everything else (public pages, /api, /health) passes through untouched;
//     data endpoints do their own status-code enforcement via RequireSession.
type Guard struct {
	tokens *TokenManager
}

// NewGuard builds the route guard.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Handle runs once per request before any handler.
func (g *Guard) Handle(c *fiber.Ctx) error {
	path := c.Path()

	if strings.HasPrefix(path, loginPath) {
		if _, ok := CurrentPrincipal(c, g.tokens); ok {
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}

	if strings.HasPrefix(path, "/admin") {
		claims, ok := CurrentPrincipal(c, g.tokens)
		if !ok {
			return c.Redirect(loginPath, fiber.StatusFound)
		}

		if strings.HasPrefix(path, "/admin/departments") && !IsAdmin(claims.Role) {
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}
		if strings.HasPrefix(path, "/admin/members") && !IsLeaderOrAbove(claims.Role) {
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}

		storePrincipal(c, claims)
		return c.Next()
	}

	return c.Next()
}

// RequireSession protects data endpoints: a missing or invalid cookie yields
// a NOT_AUTHENTICATED status instead of a redirect.
func RequireSession(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := CurrentPrincipal(c, tokens)
		if !ok {
			return apperrors.NewNotAuthenticated()
		}
		storePrincipal(c, claims)
		return c.Next()
	}
}

// RequireRole gates a data endpoint on a role predicate. Must run after
// RequireSession.
func RequireRole(allowed func(domain.Role) bool, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewNotAuthenticated()
		}
		if !allowed(claims.Role) {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}

// RequireLeader allows LEADER and ADMIN sessions.
func RequireLeader() fiber.Handler {
	return RequireRole(IsLeaderOrAbove, "leader role required")
}

// RequireAdmin allows ADMIN sessions only.
func RequireAdmin() fiber.Handler {
	return RequireRole(IsAdmin, "admin role required")
}
