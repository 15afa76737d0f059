package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rastyraw/CypherCore-Audits/internal/httpapi"
	"github.com/rastyraw/CypherCore-Audits/internal/service"
)

const (
	routeHealth                = "/healthz"
	routeContact               = "/api/contact"
	routeBookings              = "/api/bookings"
	routeChat                  = "/api/chat"
	routeChatByVisitor         = "/api/chat/:visitorId"
	corsOriginWildcard         = "*"
	corsHeaderContentType      = "Content-Type"
	httpMethodGet              = "GET"
	httpMethodOptions          = "OPTIONS"
	httpMethodPost             = "POST"
	corsPreflightCacheDuration = 12 * time.Hour
)

var (
	corsAllowedMethods = []string{httpMethodPost, httpMethodGet, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderContentType}
	corsExposedHeaders = []string{corsHeaderContentType}
	corsAllowOrigins   = []string{corsOriginWildcard}
)

func buildRouter(submissionService *service.SubmissionService, retrievalService *service.RetrievalService, logger *zap.Logger, staticDirectory string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsAllowOrigins,
		AllowMethods:     corsAllowedMethods,
		AllowHeaders:     corsAllowedHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           corsPreflightCacheDuration,
	}))

	publicHandlers := httpapi.NewPublicHandlers(submissionService, retrievalService, logger)

	router.GET(routeHealth, publicHandlers.Health)
	router.POST(routeContact, publicHandlers.CreateContactMessage)
	router.GET(routeContact, publicHandlers.ListContactMessages)
	router.POST(routeBookings, publicHandlers.CreateBooking)
	router.GET(routeBookings, publicHandlers.ListBookings)
	router.POST(routeChat, publicHandlers.CreateChatMessage)
	router.GET(routeChatByVisitor, publicHandlers.ListChatMessagesByVisitor)

	if staticDirectory != "" {
		registerStaticPages(router, staticDirectory)
	}

	return router
}

// registerStaticPages serves the marketing pages from a plain directory.
// API routes keep precedence; everything unmatched falls through to files.
func registerStaticPages(router *gin.Engine, staticDirectory string) {
	fileServer := http.FileServer(gin.Dir(staticDirectory, false))
	router.NoRoute(func(requestContext *gin.Context) {
		if requestContext.Request.Method != http.MethodGet {
			requestContext.Status(http.StatusNotFound)
			return
		}
		fileServer.ServeHTTP(requestContext.Writer, requestContext.Request)
	})
}
