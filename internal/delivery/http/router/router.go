// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"seopulse/config"
	"seopulse/internal/delivery/http/middleware"
	"seopulse/internal/delivery/http/router/handler"
	"seopulse/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config            *config.Config
	UserHandler       *handler.UserHandler
	ConnectionHandler *handler.ConnectionHandler
	MetricsHandler    *handler.MetricsHandler
	AuditHandler      *handler.AuditHandler
	TestHandler       *handler.TestHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Collector         *metrics.Collector
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg               *config.Config
	userHandler       *handler.UserHandler
	connectionHandler *handler.ConnectionHandler
	metricsHandler    *handler.MetricsHandler
	auditHandler      *handler.AuditHandler
	testHandler       *handler.TestHandler
	authMiddleware    *middleware.AuthMiddleware
	collector         *metrics.Collector
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:               params.Config,
		userHandler:       params.UserHandler,
		connectionHandler: params.ConnectionHandler,
		metricsHandler:    params.MetricsHandler,
		auditHandler:      params.AuditHandler,
		testHandler:       params.TestHandler,
		authMiddleware:    params.AuthMiddleware,
		collector:         params.Collector,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check and Prometheus scrape endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.collector.Handler()))

	api := e.Group("/api")

	// Google's OAuth redirect cannot carry a session token, the signed
	// state parameter authenticates the callback instead.
	api.GET("/google/callback/:serviceType", r.connectionHandler.Callback)

	authed := api.Group("", r.authMiddleware.Authenticate)
	{
		authed.GET("/auth/user", r.userHandler.GetCurrentUser)

		authed.GET("/google/connections", r.connectionHandler.GetConnections)
		authed.POST("/google/connect/:serviceType", r.connectionHandler.Connect)
		authed.POST("/google/disconnect/:serviceType", r.connectionHandler.Disconnect)

		authed.GET("/seo/overview", r.metricsHandler.GetSeoOverview)
		authed.GET("/seo/keywords", r.metricsHandler.GetKeywords)
		authed.GET("/seo/pages", r.metricsHandler.GetPages)
		authed.GET("/analytics/overview", r.metricsHandler.GetAnalyticsOverview)

		authed.GET("/lighthouse/audit", r.auditHandler.RunAudit)
		authed.GET("/lighthouse/history", r.auditHandler.GetHistory)
	}

	// Development-only token issuance, off in production config.
	if r.cfg != nil && r.cfg.TestRoutes.Enabled {
		api.POST("/test/token", r.testHandler.IssueToken)
	}
}
