package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketMutation inspects and edits a ticket inside the update transaction.
// Returning an error aborts the update.
type TicketMutation func(ticket *domain.Ticket) error

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, mutate TicketMutation) (*domain.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

// ListByOwner returns the owner's tickets, most recently updated first.
func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Ticket, error) {
	tickets := []domain.Ticket{}
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, translate(err)
	}
	return tickets, nil
}

// UpdateStatus loads the ticket under a row lock, lets mutate decide and edit,
// then persists status and updated_at in the same transaction.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, mutate TicketMutation) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&ticket, id).Error; err != nil {
			return err
		}
		if err := mutate(&ticket); err != nil {
			return err
		}
		return tx.Model(&domain.Ticket{}).
			Where("id = ?", ticket.ID).
			Updates(map[string]any{
				"status":     ticket.Status,
				"updated_at": ticket.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}
