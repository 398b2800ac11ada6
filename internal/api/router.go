package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/medhubhq/medhub/internal/auth"
	"github.com/medhubhq/medhub/internal/middleware"
)

type Router struct {
	handler        *Handler
	authMiddleware *auth.Middleware
}

type RouterConfig struct {
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	Burst             int
}

func NewRouter(handler *Handler, verifier *auth.Verifier) *Router {
	return &Router{
		handler:        handler,
		authMiddleware: auth.NewMiddleware(verifier, handler.auditService),
	}
}

func (r *Router) SetupRouter(logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Apply global middleware
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.SecurityHeadersMiddleware(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggerMiddleware(logger),
		middleware.RateLimitMiddleware(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
		middleware.AuditContextMiddleware(),
		middleware.CORS(),
	)

	// Health check endpoint
	router.GET("/health", r.handler.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		// Account routes: creation happens right after the identity
		// provider verifies the user, so any authenticated token may call it.
		accounts := api.Group("/accounts")
		accounts.Use(r.authMiddleware.RequireRoles())
		{
			accounts.POST("", r.handler.CreateAccount)
			accounts.GET("/:role/:userId", r.handler.GetAccount)
		}

		// Patient routes
		patients := api.Group("/patients")
		{
			patients.POST("", r.authMiddleware.RequireRoles("hospital"), r.handler.RegisterPatient)
			patients.GET("", r.authMiddleware.RequireRoles("hospital", "government", "admin"), r.handler.ListPatients)
			patients.GET("/uhn/:uhn", r.authMiddleware.RequireRoles("hospital"), r.handler.CheckUHN)
			patients.POST("/uhn", r.authMiddleware.RequireRoles("hospital"), r.handler.GenerateUHN)
		}

		// Hospital profile routes
		profile := api.Group("/hospital/profile")
		profile.Use(r.authMiddleware.RequireRoles("hospital"))
		{
			profile.GET("", r.handler.GetHospitalProfile)
			profile.PATCH("", r.handler.UpdateHospitalProfile)
		}

		// Audit log routes (admin only)
		auditLogs := api.Group("/audit")
		auditLogs.Use(r.authMiddleware.RequireRoles("admin"))
		{
			auditLogs.GET("/logs", r.handler.GetAuditLogs)
		}
	}

	return router
}
