// Package router assembles the gin engine: global middleware, the
// public probe surface and the authenticated API group.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ongcompta/backend/internal/infrastructure/config"
	"github.com/ongcompta/backend/internal/infrastructure/logger"
	"github.com/ongcompta/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	public     []RouteRegistrar
	protected  []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router with the global middleware stack applied
func NewRouter(cfg *config.Config, log *zap.Logger, opts ...RouterOption) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	// Document uploads may legitimately exceed the JSON body limit, so
	// the global cap covers the configured upload size plus form overhead.
	bodyLimit := cfg.HTTP.MaxBodySize
	if upload := cfg.Storage.MaxUploadMB<<20 + 1<<20; upload > bodyLimit {
		bodyLimit = upload
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(bodyLimit),
	)

	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterPublic adds routes served without an authenticated actor,
// such as health probes
func (r *Router) RegisterPublic(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Register adds routes that require the identity headers
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Setup registers all routes and returns the engine
func (r *Router) Setup() *gin.Engine {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	authenticated := api.Group("", middleware.Actor())
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(authenticated)
	}
	return r.engine
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
