package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
// Any status may follow any other; there is no enforced ordering.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketStatuses lists every valid status.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// Valid reports whether s is one of the four ticket statuses.
func (s TicketStatus) Valid() bool {
	for _, candidate := range TicketStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Ticket is a support request owned by the user who opened it.
type Ticket struct {
	ID          int64        `gorm:"primaryKey;autoIncrement"`
	Title       string       `gorm:"size:200;not null"`
	Description string       `gorm:"type:text"`
	Category    string       `gorm:"size:100;not null"`
	Status      TicketStatus `gorm:"size:20;not null;default:Open"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
	CreatedBy   int64     `gorm:"not null;index"`
	Owner       *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// TableName pins the table name used by the store.
func (Ticket) TableName() string {
	return "tickets"
}
