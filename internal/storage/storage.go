package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
)

const (
	errorMessageDuplicateRecordID = "storage: duplicate record identifier"
)

// ErrDuplicateRecordID indicates an insert reused an existing identifier.
var ErrDuplicateRecordID = errors.New(errorMessageDuplicateRecordID)

// Store holds the three record families in independent append-only
// collections. Records are immutable once inserted; there are no update or
// delete operations.
type Store interface {
	CreateContactMessage(ctx context.Context, record model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	CreateBooking(ctx context.Context, record model.Booking) error
	ListBookings(ctx context.Context) ([]model.Booking, error)
	CreateChatMessage(ctx context.Context, record model.ChatMessage) error
	ListChatMessages(ctx context.Context, visitorID string) ([]model.ChatMessage, error)
}

// NewID generates a new globally unique record identifier.
func NewID() string {
	return uuid.NewString()
}
