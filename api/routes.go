package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/inboundhq/domainstack/api/handlers"
	"github.com/inboundhq/domainstack/api/middleware"
	"github.com/inboundhq/domainstack/internal/repository"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	domainsHandler := handlers.NewDomainsHandler(s.DomainService, s.DNSService)

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-DOMAINSTACK-API-KEY",
		ValidAPIKey: apikey,
	})

	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.UserIdMiddleware())
	api.Use(middleware.CustomContextMiddleware("domainstack"))
	api.Use(middleware.TracingMiddleware())
	{
		domains := api.Group("/domains")
		{
			domains.POST("/:domain", domainsHandler.Register())
			domains.POST("/:domain/verify", domainsHandler.Verify())
			domains.GET("/:domain/dns-check", domainsHandler.DNSCheck())
			domains.POST("/:domain/dns-verify", domainsHandler.DNSVerify())
			domains.DELETE("/:domain", domainsHandler.Delete())
		}
	}
}
