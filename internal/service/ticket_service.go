package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
	"github.com/ZeynepCam13/OnlineDestek/internal/events"
	"github.com/ZeynepCam13/OnlineDestek/internal/repository"
	apperrors "github.com/ZeynepCam13/OnlineDestek/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket owned by the caller. Title and description
// are stored as-is; empty strings are accepted.
func (s *TicketService) CreateTicket(ctx context.Context, ownerID int64, title, description string) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		OwnerID:     ownerID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		Timestamp: time.Now(),
		Payload:   events.TicketCreatedPayload{OwnerID: ownerID, Title: title},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by id. There is deliberately no ownership
// check: any caller, authenticated or not, may look up any ticket.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// ListOwnTickets returns the caller's tickets ordered by id.
func (s *TicketService) ListOwnTickets(ctx context.Context, ownerID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// ListAllTickets returns every ticket regardless of owner. Admin gating
// happens at the route level.
func (s *TicketService) ListAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// UpdateStatus overwrites a ticket's status with any non-empty value. A
// nonexistent id updates zero rows and still reports success.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	if status == "" {
		return apperrors.NewValidationError("status is required")
	}
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketStatusChanged,
		TicketID:  id,
		Timestamp: time.Now(),
		Payload:   events.TicketStatusChangedPayload{NewStatus: status},
	})
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
