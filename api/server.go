// Package api wires the HTTP surface: router, middleware and handlers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/pomi-ng/StatusCodesApi/api/responses"
	"github.com/pomi-ng/StatusCodesApi/common/apiutil"
	"github.com/pomi-ng/StatusCodesApi/internal/config"
	"github.com/pomi-ng/StatusCodesApi/pkg/metrics"
)

// Server represents the API server
type Server struct {
	router    *gin.Engine
	logger    *zap.Logger
	cfg       *config.Config
	validator *apiutil.Validator
	http      *http.Server
}

// NewServer creates a new API server
func NewServer(logger *zap.Logger, cfg *config.Config) *Server {
	server := &Server{
		logger:    logger,
		cfg:       cfg,
		validator: apiutil.NewValidator(),
	}

	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.CustomRecoveryWithZap(logger, true, server.recoveryBoundary))
	router.Use(otelgin.Middleware("statuscodes-api"))
	router.Use(apiutil.TraceIDMiddleware())
	router.Use(apiutil.MetricsMiddleware())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Unmatched paths and methods get problem documents instead of gin's
	// plain-text defaults. The 405 at /redirecttest/target relies on this.
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		responses.NotFound(c, "The requested resource does not exist")
	})
	router.NoMethod(func(c *gin.Context) {
		responses.MethodNotAllowed(c, "Method "+c.Request.Method+" is not allowed on this resource")
	})

	server.router = router
	server.registerRoutes()
	return server
}

// recoveryBoundary converts any panic escaping a handler into a generic
// RFC 7807 fault response. The panic itself is already logged by ginzap.
func (s *Server) recoveryBoundary(c *gin.Context, _ any) {
	metrics.SimulatedFailuresTotal.WithLabelValues("500").Inc()
	responses.InternalServerError(c, "The server encountered an unexpected condition")
	c.Abort()
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", zap.String("addr", addr))
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the API server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Operational endpoints
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API documentation (ReDoc over the checked-in OpenAPI document)
	s.router.GET("/docs/openapi.yaml", func(c *gin.Context) {
		c.File("docs/openapi.yaml")
	})
	s.router.GET("/docs", func(c *gin.Context) {
		html := `<!DOCTYPE html>
		<html>
		<head>
		  <title>StatusCodes API Docs</title>
		  <meta charset="utf-8" />
		  <meta name="viewport" content="width=device-width, initial-scale=1">
		  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
		</head>
		<body>
		  <redoc spec-url='/docs/openapi.yaml'></redoc>
		</body>
		</html>`
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})

	// Status code demonstration endpoints
	statuscodes := s.router.Group("/statuscodes")
	{
		statuscodes.GET("/ok", s.ok)
		statuscodes.POST("/create", s.create)
		statuscodes.DELETE("/delete/:id", s.delete)
		statuscodes.GET("/badrequest", s.badRequest)
		statuscodes.GET("/unauthorized", s.unauthorized)
		statuscodes.GET("/forbidden", s.forbidden)
		statuscodes.GET("/notfound/:id", s.notFound)
		statuscodes.POST("/conflict", s.conflict)
		statuscodes.POST("/unprocessable", s.unprocessable)
		statuscodes.GET("/toomany", s.tooMany)
		statuscodes.GET("/internalerror", s.internalError)
		statuscodes.GET("/badgateway", s.badGateway)
		statuscodes.GET("/serviceunavailable", s.serviceUnavailable)
		statuscodes.GET("/gatewaytimeout", s.gatewayTimeout)
		statuscodes.GET("/negotiate", s.negotiate)
		statuscodes.POST("/validate-content", s.validateContent)
		statuscodes.GET("/notHereAnymore", s.movedPermanently)
		statuscodes.GET("/willRedirectToTarget", s.permanentRedirect)
	}

	// Redirect method-preservation probes
	redirecttest := s.router.Group("/redirecttest")
	{
		redirecttest.POST("/target", s.redirectTarget)
		redirecttest.POST("/redirect301", s.redirect301)
		redirecttest.POST("/redirect308", s.redirect308)
	}
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}
