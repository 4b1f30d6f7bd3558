package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cuentas/invoice-tracker/docs"
	"github.com/cuentas/invoice-tracker/internal/api/handler"
	"github.com/cuentas/invoice-tracker/internal/api/middleware"
	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "tracker"

// Deps holds everything the router wires into handlers and middleware.
type Deps struct {
	Log zerolog.Logger

	Tokens  ports.TokenManager
	Sweeper ports.Sweeper

	Auth          ports.AuthService
	Users         ports.UserService
	Clients       ports.PartyService
	Suppliers     ports.PartyService
	Invoices      ports.InvoiceService
	Notifications ports.NotificationService
	Dashboard     ports.DashboardService

	// Deliveries is optional; without it notifications are sent inline.
	Deliveries handler.DeliveryQueue

	HealthChecks map[string]handlers.Check

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))

	promMW, promHandler := prometheusHooks(deps.Registry)
	e.Use(promMW)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", promHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API v1 ---
	// Every v1 request first brings invoice statuses up to date.
	v1 := e.Group("/v1", middleware.Sweep(deps.Sweeper))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users)
	v1.POST("/token", authHandler.Token)
	v1.POST("/token/refresh", authHandler.Refresh)
	v1.POST("/token/revoke", authHandler.Revoke)

	api := v1.Group("", middleware.Auth(deps.Tokens))
	api.GET("/me", authHandler.Me)
	api.POST("/register", authHandler.Register, middleware.RequireCapability(domain.CapManageUsers))

	userHandler := handler.NewUserHandler(deps.Users)
	users := api.Group("/users", middleware.WriteRequires(domain.CapManageUsers))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	ledger := api.Group("", middleware.WriteRequires(domain.CapManageInvoices))

	registerParty(ledger.Group("/clients"), handler.NewPartyHandler(deps.Clients))
	registerParty(ledger.Group("/suppliers"), handler.NewPartyHandler(deps.Suppliers))

	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices)
	invoices := ledger.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.POST("", invoiceHandler.Create)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.PUT("/:id", invoiceHandler.Update)
	invoices.DELETE("/:id", invoiceHandler.Delete)

	notificationHandler := handler.NewNotificationHandler(deps.Notifications, deps.Deliveries)
	notifications := ledger.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.GET("/:id", notificationHandler.Get)
	notifications.PUT("/:id", notificationHandler.Update)
	notifications.DELETE("/:id", notificationHandler.Delete)
	notifications.POST("/:id/send", notificationHandler.Send)

	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	api.GET("/dashboard-metrics", dashboardHandler.Metrics, middleware.RequireCapability(domain.CapViewDashboard))

	return e
}

func registerParty(g *echo.Group, h *handler.PartyHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func prometheusHooks(reg *prometheus.Registry) (echo.MiddlewareFunc, echo.HandlerFunc) {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem), echoprometheus.NewHandler()
	}
	mw := echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
	h := echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
	return mw, h
}
