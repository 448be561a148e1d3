package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/service"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// AuthHandler exposes login, logout and current-user endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.SessionCookies
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.SessionCookies) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	member, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token, exp)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":    memberResponse(member),
			"session": dto.SessionResponse{ExpiresAt: exp},
		},
	})
}

// Logout handles POST /api/auth/logout. Always succeeds: clearing with no
// active session is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNotAuthenticated()
	}

	member, err := h.auth.CurrentUser(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": memberResponse(member)}})
}
