// Package server wires controllers and middleware into the gin router.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contactbook-be/internal/controllers"
	"contactbook-be/internal/metrics"
	"contactbook-be/internal/middleware"
	"contactbook-be/internal/service"
)

// Deps are the collaborators the router needs. Metrics may be nil.
type Deps struct {
	AuthService    service.AuthService
	ContactService service.ContactService
	Tokens         middleware.TokenValidator
	DB             controllers.Pinger
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	CORSOrigins    []string
}

// NewRouter builds the HTTP handler for the API.
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Logging(logger))
	// Metrics wraps Recovery so recovered panics are counted as 500s.
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(deps.CORSOrigins)))

	authController := controllers.NewAuthController(deps.AuthService, logger)
	contactController := controllers.NewContactController(deps.ContactService, logger)
	qrcodeController := controllers.NewQRCodeController(deps.ContactService, logger)
	healthController := controllers.NewHealthController(deps.DB, logger)

	requireAuth := middleware.AuthMiddleware(deps.Tokens, logger)

	r.GET("/", healthController.Root)
	r.GET("/health", healthController.Health)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", requireAuth, authController.Me)
	}

	// Protected routes - require JWT authentication
	contacts := r.Group("/contacts")
	contacts.Use(requireAuth)
	{
		contacts.GET("", contactController.List)
		contacts.POST("", contactController.Create)
		contacts.GET("/:id", contactController.Get)
		contacts.PUT("/:id", contactController.Replace)
		contacts.PATCH("/:id", contactController.Update)
		contacts.DELETE("/:id", contactController.Delete)
		contacts.GET("/:id/qrcode", qrcodeController.GenerateQRCode)
	}

	return r
}
