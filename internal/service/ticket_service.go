package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// Messages surfaced by TicketService.
const (
	MsgTitleCategoryRequired = "Title and category are required."
	MsgInvalidStatus         = "Invalid status"
	MsgForbidden             = "Forbidden"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets repository.TicketRepository
	policy  *auth.Policy
	now     func() time.Time
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Policy     *auth.Policy
	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Category    string
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &TicketService{
		tickets: deps.TicketRepo,
		policy:  deps.Policy,
		now:     clock,
	}
}

// ListOwnTickets returns only the caller's tickets, whatever their role.
func (s *TicketService) ListOwnTickets(ctx context.Context, identity domain.Identity) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// CreateTicket opens a ticket owned by the caller.
func (s *TicketService) CreateTicket(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	if title == "" || category == "" {
		return nil, apperrors.NewBadRequest(MsgTitleCategoryRequired)
	}

	now := s.now()
	ticket := &domain.Ticket{
		Title:       title,
		Description: input.Description,
		Category:    category,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   identity.UserID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

// UpdateStatus sets a new status when the caller owns the ticket or holds a privileged role.
// Any status may be set from any other.
func (s *TicketService) UpdateStatus(ctx context.Context, identity domain.Identity, ticketID int64, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewBadRequest(MsgInvalidStatus)
	}

	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, func(ticket *domain.Ticket) error {
		if decision := s.policy.CanUpdateStatus(identity, ticket.CreatedBy); !decision.Allowed {
			return apperrors.NewDomainError(apperrors.CodeForbidden, MsgForbidden, http.StatusForbidden).
				WithCause(errors.New(decision.Reason))
		}
		ticket.Status = newStatus
		ticket.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket")
		}
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("update ticket status: %w", err)
	}
	return ticket, nil
}
