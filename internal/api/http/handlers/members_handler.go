package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/repository"
	"github.com/missao-redime/church-service/internal/service"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

const birthDateLayout = "2006-01-02"

// MembersHandler exposes the member registry. Routes are gated to
// LEADER-or-above; admin-only rules live in the service.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(members *service.MemberService) *MembersHandler {
	return &MembersHandler{members: members}
}

// List handles GET /api/members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	filters := repository.MemberListFilters{}
	if deptID := c.Query("department_id"); deptID != "" {
		filters.DepartmentID = &deptID
	}

	members, err := h.members.List(c.Context(), filters)
	if err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(members))
	for i := range members {
		result = append(result, memberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"members": result}})
}

// Get handles GET /api/members/:id.
func (h *MembersHandler) Get(c *fiber.Ctx) error {
	member, err := h.members.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"member": memberResponse(member)}})
}

// Create handles POST /api/members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNotAuthenticated()
	}

	var req dto.MemberCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return err
	}

	member, err := h.members.Create(c.Context(), claims, service.CreateMemberInput{
		Name:          req.Name,
		CPF:           req.CPF,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		Address:       req.Address,
		Number:        req.Number,
		Complement:    req.Complement,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		BirthDate:     birthDate,
		DepartmentIDs: req.DepartmentIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"member": memberResponse(member)}})
}

// Update handles PUT /api/members/:id.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNotAuthenticated()
	}

	var req dto.MemberUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return err
	}

	input := service.UpdateMemberInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Active:        req.Active,
		Phone:         req.Phone,
		Address:       req.Address,
		Number:        req.Number,
		Complement:    req.Complement,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		BirthDate:     birthDate,
		DepartmentIDs: req.DepartmentIDs,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !auth.IsMemberOrAbove(role) {
			return apperrors.NewValidationError("invalid role", map[string]any{"role": *req.Role})
		}
		input.Role = &role
	}

	member, err := h.members.Update(c.Context(), claims, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"member": memberResponse(member)}})
}

// Delete handles DELETE /api/members/:id. ADMIN only.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewNotAuthenticated()
	}
	if err := h.members.Delete(c.Context(), claims, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthDateLayout, *raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid birth_date, expected YYYY-MM-DD", nil)
	}
	return &parsed, nil
}
