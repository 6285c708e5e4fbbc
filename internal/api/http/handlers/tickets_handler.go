package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ZeynepCam13/OnlineDestek/internal/api/dto"
	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
	"github.com/ZeynepCam13/OnlineDestek/internal/service"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

// TicketsHandler manages end-user ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets. Title and description are accepted as-is.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("login required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	ticket, err := h.service.CreateTicket(c.Context(), principal.UserID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CreatedTicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
	})
}

// ListTickets GET /api/tickets returns the caller's own tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("login required")
	}
	tickets, err := h.service.ListOwnTickets(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// GetTicket GET /api/tickets/:id. The route is intentionally open: any
// caller, including anonymous, may fetch any ticket by id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c.Params("id"))
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

func parseTicketID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("ticket")
	}
	return id, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		OwnerID:     ticket.OwnerID,
		CreatedAt:   ticket.CreatedAt,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}
