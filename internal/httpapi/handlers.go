package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
	"github.com/rastyraw/CypherCore-Audits/internal/service"
)

const (
	errorMessageInvalidFormData     = "Invalid form data"
	errorMessageSendContactFailed   = "Failed to send message"
	errorMessageListContactFailed   = "Failed to retrieve messages"
	errorMessageCreateBookingFailed = "Failed to create booking"
	errorMessageListBookingsFailed  = "Failed to retrieve bookings"
	errorMessageSendChatFailed      = "Failed to send chat message"
	errorMessageListChatFailed      = "Failed to retrieve chat messages"
	successMessageContactReceived   = "Message received successfully"
	successMessageBookingReceived   = "Booking received successfully"

	responseFieldSuccess = "success"
	responseFieldMessage = "message"
	responseFieldID      = "id"
	responseFieldError   = "error"
	responseFieldDetails = "details"
	responseFieldStatus  = "status"
	healthStatusOK       = "ok"

	routeParameterVisitorID = "visitorId"

	logEventStoreContactMessageFailed = "store_contact_message"
	logEventStoreBookingFailed        = "store_booking"
	logEventStoreChatMessageFailed    = "store_chat_message"
	logEventListContactMessagesFailed = "list_contact_messages"
	logEventListBookingsFailed        = "list_bookings"
	logEventListChatMessagesFailed    = "list_chat_messages"
)

// PublicHandlers serves the public submission and retrieval endpoints.
type PublicHandlers struct {
	submissions *service.SubmissionService
	retrieval   *service.RetrievalService
	logger      *zap.Logger
}

// NewPublicHandlers constructs a PublicHandlers instance with the provided
// dependencies.
func NewPublicHandlers(submissions *service.SubmissionService, retrieval *service.RetrievalService, logger *zap.Logger) *PublicHandlers {
	return &PublicHandlers{
		submissions: submissions,
		retrieval:   retrieval,
		logger:      logger,
	}
}

// Health reports process liveness.
func (handlers *PublicHandlers) Health(requestContext *gin.Context) {
	requestContext.JSON(http.StatusOK, gin.H{responseFieldStatus: healthStatusOK})
}

// CreateContactMessage accepts contact-form submissions.
func (handlers *PublicHandlers) CreateContactMessage(requestContext *gin.Context) {
	var payload model.ContactMessageInput
	if bindErr := requestContext.BindJSON(&payload); bindErr != nil {
		requestContext.JSON(http.StatusBadRequest, gin.H{responseFieldError: errorMessageInvalidFormData})
		return
	}

	record, fieldErrors, submitErr := handlers.submissions.SubmitContactMessage(requestContext.Request.Context(), payload)
	if submitErr != nil {
		handlers.logger.Warn(logEventStoreContactMessageFailed, zap.Error(submitErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageSendContactFailed})
		return
	}
	if !fieldErrors.Empty() {
		requestContext.JSON(http.StatusBadRequest, gin.H{
			responseFieldError:   errorMessageInvalidFormData,
			responseFieldDetails: fieldErrors,
		})
		return
	}

	requestContext.JSON(http.StatusCreated, gin.H{
		responseFieldSuccess: true,
		responseFieldMessage: successMessageContactReceived,
		responseFieldID:      record.ID,
	})
}

// ListContactMessages returns all contact messages, newest first.
func (handlers *PublicHandlers) ListContactMessages(requestContext *gin.Context) {
	records, listErr := handlers.retrieval.ListContactMessages(requestContext.Request.Context())
	if listErr != nil {
		handlers.logger.Warn(logEventListContactMessagesFailed, zap.Error(listErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageListContactFailed})
		return
	}
	requestContext.JSON(http.StatusOK, records)
}

// CreateBooking accepts consultation-booking submissions.
func (handlers *PublicHandlers) CreateBooking(requestContext *gin.Context) {
	var payload model.BookingInput
	if bindErr := requestContext.BindJSON(&payload); bindErr != nil {
		requestContext.JSON(http.StatusBadRequest, gin.H{responseFieldError: errorMessageInvalidFormData})
		return
	}

	record, fieldErrors, submitErr := handlers.submissions.SubmitBooking(requestContext.Request.Context(), payload)
	if submitErr != nil {
		handlers.logger.Warn(logEventStoreBookingFailed, zap.Error(submitErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageCreateBookingFailed})
		return
	}
	if !fieldErrors.Empty() {
		requestContext.JSON(http.StatusBadRequest, gin.H{
			responseFieldError:   errorMessageInvalidFormData,
			responseFieldDetails: fieldErrors,
		})
		return
	}

	requestContext.JSON(http.StatusCreated, gin.H{
		responseFieldSuccess: true,
		responseFieldMessage: successMessageBookingReceived,
		responseFieldID:      record.ID,
	})
}

// ListBookings returns all bookings, newest first.
func (handlers *PublicHandlers) ListBookings(requestContext *gin.Context) {
	records, listErr := handlers.retrieval.ListBookings(requestContext.Request.Context())
	if listErr != nil {
		handlers.logger.Warn(logEventListBookingsFailed, zap.Error(listErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageListBookingsFailed})
		return
	}
	requestContext.JSON(http.StatusOK, records)
}

// CreateChatMessage accepts chat submissions. The success body carries the
// full stored record so the widget can render it immediately.
func (handlers *PublicHandlers) CreateChatMessage(requestContext *gin.Context) {
	var payload model.ChatMessageInput
	if bindErr := requestContext.BindJSON(&payload); bindErr != nil {
		requestContext.JSON(http.StatusBadRequest, gin.H{responseFieldError: errorMessageInvalidFormData})
		return
	}

	record, fieldErrors, submitErr := handlers.submissions.SubmitChatMessage(requestContext.Request.Context(), payload)
	if submitErr != nil {
		handlers.logger.Warn(logEventStoreChatMessageFailed, zap.Error(submitErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageSendChatFailed})
		return
	}
	if !fieldErrors.Empty() {
		requestContext.JSON(http.StatusBadRequest, gin.H{
			responseFieldError:   errorMessageInvalidFormData,
			responseFieldDetails: fieldErrors,
		})
		return
	}

	requestContext.JSON(http.StatusCreated, gin.H{
		responseFieldSuccess: true,
		responseFieldMessage: record,
	})
}

// ListChatMessagesByVisitor returns one visitor's thread, oldest first. The
// visitor identifier is an opaque client-supplied token with no ownership
// check; an unknown one yields an empty list.
func (handlers *PublicHandlers) ListChatMessagesByVisitor(requestContext *gin.Context) {
	visitorID := requestContext.Param(routeParameterVisitorID)

	records, listErr := handlers.retrieval.ListChatMessages(requestContext.Request.Context(), visitorID)
	if listErr != nil {
		handlers.logger.Warn(logEventListChatMessagesFailed, zap.Error(listErr))
		requestContext.JSON(http.StatusInternalServerError, gin.H{responseFieldError: errorMessageListChatFailed})
		return
	}
	requestContext.JSON(http.StatusOK, records)
}
