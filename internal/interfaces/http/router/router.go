package router

import (
	"github.com/gin-gonic/gin"
	"github.com/zanco/backend/internal/infrastructure/auth"
	"github.com/zanco/backend/internal/infrastructure/config"
	"github.com/zanco/backend/internal/infrastructure/logger"
	"github.com/zanco/backend/internal/interfaces/http/handler"
	"github.com/zanco/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the handlers mounted by the router
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

// New builds the gin engine with the full middleware chain and all
// routes mounted under /api/v1.
func New(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	api := engine.Group("/api/v1")

	handlers.System.RegisterRoutes(api)
	handlers.Auth.RegisterPublicRoutes(api)
	handlers.Product.RegisterPublicRoutes(api)
	handlers.Review.RegisterPublicRoutes(api)

	// Cart serves guests and signed-in customers alike
	cart := api.Group("")
	cart.Use(middleware.OptionalAuth(jwtService))
	handlers.Cart.RegisterRoutes(cart)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(jwtService))
	handlers.Auth.RegisterProtectedRoutes(protected)
	handlers.Review.RegisterProtectedRoutes(protected)
	handlers.Order.RegisterProtectedRoutes(protected)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(jwtService), middleware.RequireAdmin())
	handlers.Auth.RegisterAdminRoutes(admin)
	handlers.Product.RegisterAdminRoutes(admin)
	handlers.Review.RegisterAdminRoutes(admin)
	handlers.Order.RegisterAdminRoutes(admin)

	return engine
}
