package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/service"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// AdminHandler serves the admin page routes the guard protects. These return
// JSON summaries; UI rendering is handled by a separate frontend.
type AdminHandler struct {
	members     *service.MemberService
	departments *service.DepartmentService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(members *service.MemberService, departments *service.DepartmentService) *AdminHandler {
	return &AdminHandler{members: members, departments: departments}
}

// LoginPage handles GET /auth/login. The guard has already redirected
// authenticated sessions to the dashboard.
func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	claims, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNotAuthenticated()
	}

	memberCount, err := h.members.CountActive(c.Context())
	if err != nil {
		return err
	}
	departmentCount, err := h.departments.Count(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"page": "dashboard",
		"user": fiber.Map{"name": claims.Name, "role": claims.Role},
		"stats": fiber.Map{
			"active_members": memberCount,
			"departments":    departmentCount,
		},
	})
}

// MembersPage handles GET /admin/members. The guard has already enforced
// LEADER-or-above.
func (h *AdminHandler) MembersPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "members"})
}

// DepartmentsPage handles GET /admin/departments. The guard has already
// enforced ADMIN.
func (h *AdminHandler) DepartmentsPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "departments"})
}
