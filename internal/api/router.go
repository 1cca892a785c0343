package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bizsphere/marketplace/docs"
	"github.com/bizsphere/marketplace/internal/api/handler"
	"github.com/bizsphere/marketplace/internal/api/middleware"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Logger      zerolog.Logger
	Auth        ports.AuthService
	Policy      ports.AccessPolicy
	Admin       ports.AdminService
	Catalog     ports.CatalogService
	Readiness   []handler.DependencyCheck
	CORSOrigins []string
	// Metrics receives the HTTP request metrics and backs /metrics.
	// Nil uses the Prometheus default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       BizSphere Marketplace API
// @version                     1.0
// @description                 Accounts, business verification and product catalog for the BizSphere marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metricsMiddleware(d.Metrics))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	adminHandler := handler.NewAdminHandler(d.Admin)
	productHandler := handler.NewProductHandler(d.Catalog)

	authenticated := middleware.Guard(d.Auth.Authenticate)
	adminOnly := middleware.AdminOnly(d.Policy)
	verifiedOwner := middleware.VerifiedOwnerOnly(d.Policy)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authenticated)
	auth.POST("/logout", authHandler.Logout, authenticated)

	// --- Admin routes ---
	admin := e.Group("/admin", adminOnly)
	admin.GET("/businesses", adminHandler.Businesses)
	admin.GET("/dashboard-stats", adminHandler.DashboardStats)
	admin.PUT("/verify-business/:id", adminHandler.VerifyBusiness)
	admin.GET("/users", adminHandler.Users)

	// --- Product routes ---
	// Static segments take priority over :id in Echo's router.
	products := e.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/my-products", productHandler.Mine, verifiedOwner)
	products.GET("/stats/business", productHandler.Stats, verifiedOwner)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, verifiedOwner)
	products.PUT("/:id", productHandler.Update, verifiedOwner)
	products.DELETE("/:id", productHandler.Delete, verifiedOwner)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", metricsHandler(d.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "bizsphere",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			path := c.Path()
			return path == "/metrics" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/swagger")
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
