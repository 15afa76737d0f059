package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
	"github.com/rastyraw/CypherCore-Audits/internal/storage"
)

const (
	logEventContactMessageStored = "contact_message_stored"
	logEventBookingStored        = "booking_stored"
	logEventChatMessageStored    = "chat_message_stored"
	logFieldRecordID             = "record_id"
	logFieldVisitorID            = "visitor_id"
	logFieldService              = "service"
)

// IdentityGenerator produces a unique identifier for an accepted record.
type IdentityGenerator func() string

// Clock produces the wall-clock timestamp assigned to an accepted record.
type Clock func() time.Time

// SubmissionService turns raw external submissions into stored records:
// validate, assign identity and timestamp, persist. A failed validation
// leaves the store untouched.
type SubmissionService struct {
	store             storage.Store
	identityGenerator IdentityGenerator
	clock             Clock
	logger            *zap.Logger
}

// NewSubmissionService constructs a SubmissionService with the provided
// dependencies.
func NewSubmissionService(store storage.Store, identityGenerator IdentityGenerator, clock Clock, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		store:             store,
		identityGenerator: identityGenerator,
		clock:             clock,
		logger:            logger,
	}
}

// NewDefaultSubmissionService constructs a SubmissionService using UUID
// identifiers and the system clock.
func NewDefaultSubmissionService(store storage.Store, logger *zap.Logger) *SubmissionService {
	return NewSubmissionService(store, storage.NewID, time.Now, logger)
}

// SubmitContactMessage validates and stores a contact submission. A
// non-empty FieldErrors means the submission was rejected and nothing was
// stored; a non-nil error means the store itself failed.
func (submissionService *SubmissionService) SubmitContactMessage(ctx context.Context, input model.ContactMessageInput) (model.ContactMessage, model.FieldErrors, error) {
	record, fieldErrors := model.ValidateContactMessage(input)
	if !fieldErrors.Empty() {
		return model.ContactMessage{}, fieldErrors, nil
	}

	record.ID = submissionService.identityGenerator()
	record.CreatedAt = submissionService.clock()

	if storeErr := submissionService.store.CreateContactMessage(ctx, record); storeErr != nil {
		return model.ContactMessage{}, nil, storeErr
	}

	submissionService.logger.Info(logEventContactMessageStored, zap.String(logFieldRecordID, record.ID))
	return record, nil, nil
}

// SubmitBooking validates and stores a consultation-booking submission. The
// preferred date is checked against the service clock at call time.
func (submissionService *SubmissionService) SubmitBooking(ctx context.Context, input model.BookingInput) (model.Booking, model.FieldErrors, error) {
	record, fieldErrors := model.ValidateBooking(input, submissionService.clock())
	if !fieldErrors.Empty() {
		return model.Booking{}, fieldErrors, nil
	}

	record.ID = submissionService.identityGenerator()
	record.CreatedAt = submissionService.clock()

	if storeErr := submissionService.store.CreateBooking(ctx, record); storeErr != nil {
		return model.Booking{}, nil, storeErr
	}

	submissionService.logger.Info(logEventBookingStored,
		zap.String(logFieldRecordID, record.ID),
		zap.String(logFieldService, record.Service),
	)
	return record, nil, nil
}

// SubmitChatMessage validates and stores a chat submission.
func (submissionService *SubmissionService) SubmitChatMessage(ctx context.Context, input model.ChatMessageInput) (model.ChatMessage, model.FieldErrors, error) {
	record, fieldErrors := model.ValidateChatMessage(input)
	if !fieldErrors.Empty() {
		return model.ChatMessage{}, fieldErrors, nil
	}

	record.ID = submissionService.identityGenerator()
	record.CreatedAt = submissionService.clock()

	if storeErr := submissionService.store.CreateChatMessage(ctx, record); storeErr != nil {
		return model.ChatMessage{}, nil, storeErr
	}

	submissionService.logger.Info(logEventChatMessageStored,
		zap.String(logFieldRecordID, record.ID),
		zap.String(logFieldVisitorID, record.VisitorID),
	)
	return record, nil, nil
}
