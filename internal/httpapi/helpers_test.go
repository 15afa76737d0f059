package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/httpapi"
	"github.com/rastyraw/CypherCore-Audits/internal/service"
	"github.com/rastyraw/CypherCore-Audits/internal/storage"
)

const (
	testRouteContact       = "/api/contact"
	testRouteBookings      = "/api/bookings"
	testRouteChat          = "/api/chat"
	testRouteChatByVisitor = "/api/chat/:visitorId"
	testRouteChatPrefix    = "/api/chat/"
	testRouteHealth        = "/healthz"

	contentTypeHeaderName = "Content-Type"
	contentTypeJSON       = "application/json"
)

type apiHarness struct {
	router *gin.Engine
	store  *storage.MemoryStore
}

// buildAPIHarness wires a fresh in-memory store behind the public routes.
// The injected clock advances one second per call so ordering assertions
// never depend on wall-clock resolution.
func buildAPIHarness(testingT *testing.T) *apiHarness {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()

	var clockMutex sync.Mutex
	currentTime := time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		clockMutex.Lock()
		defer clockMutex.Unlock()
		currentTime = currentTime.Add(time.Second)
		return currentTime
	}

	submissionService := service.NewSubmissionService(store, storage.NewID, clock, zap.NewNop())
	retrievalService := service.NewRetrievalService(store)
	publicHandlers := httpapi.NewPublicHandlers(submissionService, retrievalService, zap.NewNop())

	router := gin.New()
	router.GET(testRouteHealth, publicHandlers.Health)
	router.POST(testRouteContact, publicHandlers.CreateContactMessage)
	router.GET(testRouteContact, publicHandlers.ListContactMessages)
	router.POST(testRouteBookings, publicHandlers.CreateBooking)
	router.GET(testRouteBookings, publicHandlers.ListBookings)
	router.POST(testRouteChat, publicHandlers.CreateChatMessage)
	router.GET(testRouteChatByVisitor, publicHandlers.ListChatMessagesByVisitor)

	return &apiHarness{router: router, store: store}
}

func performJSONRequest(testingT *testing.T, router *gin.Engine, method string, path string, payload any) *httptest.ResponseRecorder {
	testingT.Helper()

	var requestBody *bytes.Buffer
	if payload != nil {
		encodedPayload, marshalErr := json.Marshal(payload)
		require.NoError(testingT, marshalErr)
		requestBody = bytes.NewBuffer(encodedPayload)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	request := httptest.NewRequest(method, path, requestBody)
	request.Header.Set(contentTypeHeaderName, contentTypeJSON)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func performRawRequest(testingT *testing.T, router *gin.Engine, method string, path string, rawBody string) *httptest.ResponseRecorder {
	testingT.Helper()

	request := httptest.NewRequest(method, path, bytes.NewBufferString(rawBody))
	request.Header.Set(contentTypeHeaderName, contentTypeJSON)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeJSONBody(testingT *testing.T, recorder *httptest.ResponseRecorder, target any) {
	testingT.Helper()
	require.NoError(testingT, json.Unmarshal(recorder.Body.Bytes(), target))
}
