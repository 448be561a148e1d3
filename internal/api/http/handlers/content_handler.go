package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/api/dto"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/service"
)

// ContentHandler serves the public sermon and live-stream endpoints plus the
// admin-side sermon management.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ListSermons handles GET /api/sermons (public, published only).
func (h *ContentHandler) ListSermons(c *fiber.Ctx) error {
	sermons, err := h.content.ListPublished(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(sermons))
	for i := range sermons {
		result = append(result, sermonResponse(&sermons[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sermons": result}})
}

// GetSermon handles GET /api/sermons/:slug (public).
func (h *ContentHandler) GetSermon(c *fiber.Ctx) error {
	sermon, err := h.content.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sermon": sermonResponse(sermon)}})
}

// Live handles GET /api/live (public).
func (h *ContentHandler) Live(c *fiber.Ctx) error {
	status, err := h.content.LiveStatus(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"live": status}})
}

// ListAllSermons handles GET /api/admin/sermons, drafts included.
func (h *ContentHandler) ListAllSermons(c *fiber.Ctx) error {
	sermons, err := h.content.ListAll(c.Context())
	if err != nil {
		return err
	}
	result := make([]fiber.Map, 0, len(sermons))
	for i := range sermons {
		result = append(result, sermonResponse(&sermons[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sermons": result}})
}

// CreateSermon handles POST /api/admin/sermons.
func (h *ContentHandler) CreateSermon(c *fiber.Ctx) error {
	var req dto.SermonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sermon, err := h.content.CreateSermon(c.Context(), sermonInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"sermon": sermonResponse(sermon)}})
}

// UpdateSermon handles PUT /api/admin/sermons/:id.
func (h *ContentHandler) UpdateSermon(c *fiber.Ctx) error {
	var req dto.SermonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sermon, err := h.content.UpdateSermon(c.Context(), c.Params("id"), sermonInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sermon": sermonResponse(sermon)}})
}

// DeleteSermon handles DELETE /api/admin/sermons/:id. ADMIN only.
func (h *ContentHandler) DeleteSermon(c *fiber.Ctx) error {
	if err := h.content.DeleteSermon(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// SetLive handles PUT /api/admin/live. ADMIN only.
func (h *ContentHandler) SetLive(c *fiber.Ctx) error {
	var req dto.LiveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.LiveStatus{
		OnAir:     req.OnAir,
		StreamURL: req.StreamURL,
		Title:     req.Title,
	}
	if err := h.content.SetLiveStatus(c.Context(), status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"live": status}})
}

func sermonInput(req dto.SermonRequest) service.SermonInput {
	return service.SermonInput{
		Title:       req.Title,
		Speaker:     req.Speaker,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		PreachedAt:  req.PreachedAt,
		Published:   req.Published,
	}
}
