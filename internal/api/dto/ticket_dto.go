package dto

import (
	"time"

	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusRequest payload for admin status changes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	OwnerID     int64               `json:"user_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// CreatedTicketResponse is returned from ticket creation.
type CreatedTicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
}
