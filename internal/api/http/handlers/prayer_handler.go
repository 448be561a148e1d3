package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/service"
)

// PrayerHandler exposes the public prayer room and the intercession-team
// listing.
type PrayerHandler struct {
	prayer *service.PrayerService
}

// NewPrayerHandler constructs handler.
func NewPrayerHandler(prayer *service.PrayerService) *PrayerHandler {
	return &PrayerHandler{prayer: prayer}
}

// Submit handles POST /api/prayer-requests. Public.
func (h *PrayerHandler) Submit(c *fiber.Ctx) error {
	var req dto.PrayerRequestSubmission
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	request, err := h.prayer.Submit(c.Context(), service.PrayerRequestInput{
		Name:     req.Name,
		Contact:  req.Contact,
		Request:  req.Request,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"prayer_request": prayerRequestResponse(request)}})
}

// List handles GET /api/prayer-requests.
func (h *PrayerHandler) List(c *fiber.Ctx) error {
	requests, err := h.prayer.List(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(requests))
	for i := range requests {
		result = append(result, prayerRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"prayer_requests": result}})
}

// MarkPrayed handles PATCH /api/prayer-requests/:id/prayed.
func (h *PrayerHandler) MarkPrayed(c *fiber.Ctx) error {
	if err := h.prayer.MarkPrayed(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "prayed"}})
}
