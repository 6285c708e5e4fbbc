package domain

import "time"

// TicketStatus is the lifecycle state of a ticket. Only the creation default
// is named here: admins may set any non-empty value and the store does not
// enforce an enumerated set.
type TicketStatus string

// TicketStatusOpen is the status assigned at creation.
const TicketStatusOpen TicketStatus = "open"

// Ticket is a support request owned by the user who created it.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	OwnerID     int64
	CreatedAt   time.Time
}
