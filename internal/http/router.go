// Package httpapi wires the HTTP transport (Gin) to the storage layer, the
// auth service, middleware, and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/hotelrm/go-ota-backend/internal/config"
	"github.com/hotelrm/go-ota-backend/internal/http/handlers"
	"github.com/hotelrm/go-ota-backend/internal/http/middleware"
	"github.com/hotelrm/go-ota-backend/internal/services"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the versioned API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip
//  6. Metrics
//  7. Auth: resolve session token (before the limiter so buckets key by user)
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, st store.Store, auth *services.AuthService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB) and response compression
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Resolve session identity for the whole tree
	r.Use(middleware.Auth(auth, handlers.SessionToken))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true, // session cookie flows cross-origin only for allowlisted origins
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (docs are optional at runtime)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(st, auth)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Session lifecycle; register and login are the only open endpoints.
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		authed := api.Group("", middleware.RequireAuth())
		{
			authed.GET("/auth/me", h.Me)

			// OTA accounts
			authed.GET("/accounts", h.ListAccounts)
			authed.POST("/accounts", h.CreateAccount)
			authed.GET("/accounts/:id", h.GetAccount)
			authed.PUT("/accounts/:id", h.UpdateAccount)
			authed.DELETE("/accounts/:id", h.DeleteAccount)

			// Activities
			authed.GET("/activities", h.ListActivities)
			authed.POST("/activities", h.CreateActivity)
			authed.GET("/activities/:id", h.GetActivity)
			authed.PUT("/activities/:id", h.UpdateActivity)
			authed.DELETE("/activities/:id", h.DeleteActivity)

			// Strategies
			authed.GET("/strategies", h.ListStrategies)
			authed.GET("/strategies/applied", h.ListAppliedStrategies)
			authed.GET("/strategies/recent", h.ListRecentStrategies)
			authed.POST("/strategies", h.CreateStrategy)
			authed.GET("/strategies/:id", h.GetStrategy)
			authed.PUT("/strategies/:id", h.UpdateStrategy)
			authed.POST("/strategies/:id/apply", h.ApplyStrategy)
			authed.DELETE("/strategies/:id", h.DeleteStrategy)

			// API keys
			authed.GET("/api-keys", h.ListAPIKeys)
			authed.POST("/api-keys", h.CreateAPIKey)
			authed.PUT("/api-keys/:id", h.UpdateAPIKey)
			authed.DELETE("/api-keys/:id", h.DeleteAPIKey)

			// Settings
			authed.GET("/settings", h.GetSettings)
			authed.PUT("/settings", h.UpdateSettings)

			// Global strategy parameter/template catalog
			authed.GET("/strategy-parameters", h.ListStrategyParameters)
			authed.POST("/strategy-parameters", h.CreateStrategyParameter)
			authed.GET("/strategy-parameters/:id", h.GetStrategyParameter)
			authed.PUT("/strategy-parameters/:id", h.UpdateStrategyParameter)
			authed.DELETE("/strategy-parameters/:id", h.DeleteStrategyParameter)

			authed.GET("/strategy-templates", h.ListStrategyTemplates)
			authed.POST("/strategy-templates", h.CreateStrategyTemplate)
			authed.GET("/strategy-templates/:id", h.GetStrategyTemplate)
			authed.PUT("/strategy-templates/:id", h.UpdateStrategyTemplate)
			authed.DELETE("/strategy-templates/:id", h.DeleteStrategyTemplate)

			// Dashboard
			authed.GET("/dashboard/summary", h.DashboardSummary)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
