package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/service"
)

// DepartmentsHandler exposes ministry departments: an authenticated listing
// for the admin area, a public listing for the ministries page, and
// admin-only mutations.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List handles GET /api/departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, err := h.departments.List(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(depts))
	for i := range depts {
		result = append(result, departmentWithStatsResponse(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"departments": result}})
}

// Ministries handles GET /api/ministries (public, active only).
func (h *DepartmentsHandler) Ministries(c *fiber.Ctx) error {
	depts, err := h.departments.ListActive(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(depts))
	for i := range depts {
		result = append(result, departmentResponse(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ministries": result}})
}

// Create handles POST /api/departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dept, err := h.departments.Create(c.Context(), service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		LeaderID:    req.LeaderID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"department": departmentResponse(dept)}})
}

// Update handles PUT /api/departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dept, err := h.departments.Update(c.Context(), c.Params("id"), service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		LeaderID:    req.LeaderID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"department": departmentResponse(dept)}})
}

// Deactivate handles DELETE /api/departments/:id.
func (h *DepartmentsHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.departments.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deactivated"}})
}
