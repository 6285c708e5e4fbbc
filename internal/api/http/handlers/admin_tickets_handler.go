package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ZeynepCam13/OnlineDestek/internal/api/dto"
	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
	"github.com/ZeynepCam13/OnlineDestek/internal/service"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

// AdminTicketsHandler handles admin-only ticket endpoints. Admin gating is
// enforced by the route middleware, not here.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// ListAllTickets GET /api/admin/tickets returns every ticket.
func (h *AdminTicketsHandler) ListAllTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListAllTickets(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// UpdateStatus POST /api/admin/tickets/:id/status. Any non-empty status is
// accepted; an id that matches no ticket is a silent no-op success, so an
// unparseable id takes the same path as a missing one.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.JSON(fiber.Map{"message": "status updated"})
	}

	if err := h.service.UpdateStatus(c.Context(), id, domain.TicketStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}
