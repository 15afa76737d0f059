package service

import (
	"context"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
	"github.com/rastyraw/CypherCore-Audits/internal/storage"
)

// RetrievalService exposes read access for listing stored submissions. All
// reads are side-effect free; an unknown visitor yields an empty sequence.
type RetrievalService struct {
	store storage.Store
}

// NewRetrievalService constructs a RetrievalService over the given store.
func NewRetrievalService(store storage.Store) *RetrievalService {
	return &RetrievalService{store: store}
}

// ListContactMessages returns all contact messages, newest first.
func (retrievalService *RetrievalService) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	return retrievalService.store.ListContactMessages(ctx)
}

// ListBookings returns all bookings, newest first.
func (retrievalService *RetrievalService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return retrievalService.store.ListBookings(ctx)
}

// ListChatMessages returns one visitor's conversation thread, oldest first.
func (retrievalService *RetrievalService) ListChatMessages(ctx context.Context, visitorID string) ([]model.ChatMessage, error) {
	return retrievalService.store.ListChatMessages(ctx, visitorID)
}
