package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
)

// MemoryStore keeps all records in process memory for the lifetime of the
// store. Each kind's collection carries its own lock so concurrent inserts
// never race on the underlying slice; reads sort a snapshot copy.
type MemoryStore struct {
	contactMessagesMutex sync.RWMutex
	contactMessages      []model.ContactMessage
	contactMessageIDs    map[string]struct{}

	bookingsMutex sync.RWMutex
	bookings      []model.Booking
	bookingIDs    map[string]struct{}

	chatMessagesMutex sync.RWMutex
	chatMessages      []model.ChatMessage
	chatMessageIDs    map[string]struct{}
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contactMessageIDs: make(map[string]struct{}),
		bookingIDs:        make(map[string]struct{}),
		chatMessageIDs:    make(map[string]struct{}),
	}
}

// CreateContactMessage appends a contact message record.
func (store *MemoryStore) CreateContactMessage(_ context.Context, record model.ContactMessage) error {
	store.contactMessagesMutex.Lock()
	defer store.contactMessagesMutex.Unlock()

	if _, idExists := store.contactMessageIDs[record.ID]; idExists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecordID, record.ID)
	}
	store.contactMessageIDs[record.ID] = struct{}{}
	store.contactMessages = append(store.contactMessages, record)
	return nil
}

// ListContactMessages returns all contact messages, newest first. Records
// sharing a creation timestamp keep their insertion order.
func (store *MemoryStore) ListContactMessages(_ context.Context) ([]model.ContactMessage, error) {
	store.contactMessagesMutex.RLock()
	records := make([]model.ContactMessage, len(store.contactMessages))
	copy(records, store.contactMessages)
	store.contactMessagesMutex.RUnlock()

	sort.SliceStable(records, func(left int, right int) bool {
		return records[left].CreatedAt.After(records[right].CreatedAt)
	})
	return records, nil
}

// CreateBooking appends a consultation-booking record.
func (store *MemoryStore) CreateBooking(_ context.Context, record model.Booking) error {
	store.bookingsMutex.Lock()
	defer store.bookingsMutex.Unlock()

	if _, idExists := store.bookingIDs[record.ID]; idExists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecordID, record.ID)
	}
	store.bookingIDs[record.ID] = struct{}{}
	store.bookings = append(store.bookings, record)
	return nil
}

// ListBookings returns all bookings, newest first.
func (store *MemoryStore) ListBookings(_ context.Context) ([]model.Booking, error) {
	store.bookingsMutex.RLock()
	records := make([]model.Booking, len(store.bookings))
	copy(records, store.bookings)
	store.bookingsMutex.RUnlock()

	sort.SliceStable(records, func(left int, right int) bool {
		return records[left].CreatedAt.After(records[right].CreatedAt)
	})
	return records, nil
}

// CreateChatMessage appends a chat message record.
func (store *MemoryStore) CreateChatMessage(_ context.Context, record model.ChatMessage) error {
	store.chatMessagesMutex.Lock()
	defer store.chatMessagesMutex.Unlock()

	if _, idExists := store.chatMessageIDs[record.ID]; idExists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecordID, record.ID)
	}
	store.chatMessageIDs[record.ID] = struct{}{}
	store.chatMessages = append(store.chatMessages, record)
	return nil
}

// ListChatMessages returns the visitor's conversation thread, oldest first.
// An unknown visitor yields an empty sequence.
func (store *MemoryStore) ListChatMessages(_ context.Context, visitorID string) ([]model.ChatMessage, error) {
	store.chatMessagesMutex.RLock()
	records := make([]model.ChatMessage, 0)
	for _, record := range store.chatMessages {
		if record.VisitorID == visitorID {
			records = append(records, record)
		}
	}
	store.chatMessagesMutex.RUnlock()

	sort.SliceStable(records, func(left int, right int) bool {
		return records[left].CreatedAt.Before(records[right].CreatedAt)
	})
	return records, nil
}
