package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/httpapi"
	"github.com/rastyraw/CypherCore-Audits/internal/model"
	"github.com/rastyraw/CypherCore-Audits/internal/service"
	"github.com/rastyraw/CypherCore-Audits/internal/storage"
)

var errStoreBroken = errors.New("store broken")

// brokenStore fails every operation to exercise the 500 paths.
type brokenStore struct{}

func (brokenStore) CreateContactMessage(context.Context, model.ContactMessage) error {
	return errStoreBroken
}

func (brokenStore) ListContactMessages(context.Context) ([]model.ContactMessage, error) {
	return nil, errStoreBroken
}

func (brokenStore) CreateBooking(context.Context, model.Booking) error {
	return errStoreBroken
}

func (brokenStore) ListBookings(context.Context) ([]model.Booking, error) {
	return nil, errStoreBroken
}

func (brokenStore) CreateChatMessage(context.Context, model.ChatMessage) error {
	return errStoreBroken
}

func (brokenStore) ListChatMessages(context.Context, string) ([]model.ChatMessage, error) {
	return nil, errStoreBroken
}

func buildBrokenStoreRouter(testingT *testing.T) *gin.Engine {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	submissionService := service.NewSubmissionService(brokenStore{}, storage.NewID, time.Now, zap.NewNop())
	retrievalService := service.NewRetrievalService(brokenStore{})
	publicHandlers := httpapi.NewPublicHandlers(submissionService, retrievalService, zap.NewNop())

	router := gin.New()
	router.POST(testRouteContact, publicHandlers.CreateContactMessage)
	router.GET(testRouteContact, publicHandlers.ListContactMessages)
	router.POST(testRouteBookings, publicHandlers.CreateBooking)
	router.GET(testRouteBookings, publicHandlers.ListBookings)
	router.POST(testRouteChat, publicHandlers.CreateChatMessage)
	router.GET(testRouteChatByVisitor, publicHandlers.ListChatMessagesByVisitor)
	return router
}

func TestStoreFaultsSurfaceAsGeneric500s(testingT *testing.T) {
	router := buildBrokenStoreRouter(testingT)

	testCases := []struct {
		name    string
		method  string
		path    string
		payload any
	}{
		{"create contact", http.MethodPost, testRouteContact, contactPayload("a long enough contact message")},
		{"list contacts", http.MethodGet, testRouteContact, nil},
		{"create booking", http.MethodPost, testRouteBookings, bookingPayload()},
		{"list bookings", http.MethodGet, testRouteBookings, nil},
		{"create chat", http.MethodPost, testRouteChat, model.ChatMessageInput{VisitorID: "v", Message: "hi"}},
		{"list chat", http.MethodGet, testRouteChatPrefix + "v", nil},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testingT.Run(testCase.name, func(subTestingT *testing.T) {
			response := performJSONRequest(subTestingT, router, testCase.method, testCase.path, testCase.payload)
			require.Equal(subTestingT, http.StatusInternalServerError, response.Code)
			require.Contains(subTestingT, response.Body.String(), "error")
			require.NotContains(subTestingT, response.Body.String(), errStoreBroken.Error())
		})
	}
}
