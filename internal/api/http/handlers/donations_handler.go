package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/service"
)

// DonationsHandler exposes the public donation submission and the
// leader-only listing.
type DonationsHandler struct {
	donations *service.DonationService
	tokens    *auth.TokenManager
}

// NewDonationsHandler constructs handler.
func NewDonationsHandler(donations *service.DonationService, tokens *auth.TokenManager) *DonationsHandler {
	return &DonationsHandler{donations: donations, tokens: tokens}
}

// Create handles POST /api/donations. Public; a valid session, when present,
// associates the donation with the caller.
func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	var req dto.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	claims, _ := auth.CurrentPrincipal(c, h.tokens)

	donation, err := h.donations.Create(c.Context(), claims, service.DonationInput{
		Amount:      req.Amount,
		Type:        req.Type,
		Frequency:   req.Frequency,
		Message:     req.Message,
		DonorName:   req.DonorName,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"donation": donationResponse(donation)}})
}

// List handles GET /api/donations.
func (h *DonationsHandler) List(c *fiber.Ctx) error {
	donations, err := h.donations.ListRecent(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(donations))
	for i := range donations {
		result = append(result, donationResponse(&donations[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"donations": result}})
}
