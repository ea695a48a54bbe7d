package v1

import (
	"time"

	"heyjob-backend/config"
	"heyjob-backend/internal/delivery/http/middleware"
	"heyjob-backend/internal/domain"
	"heyjob-backend/internal/usecase"
	"heyjob-backend/pkg/audit"
	"heyjob-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	JobUC        domain.JobUsecase
	HealthUC     usecase.HealthUsecase
	JWKSProvider *auth.Provider
	Audit        *audit.Logger
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	globalLimit := middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)
	globalLimit.Audit = deps.Audit
	writeLimit := middleware.WriteRateLimitConfig(cfg.RateLimitWriteThreshold, window)
	writeLimit.Audit = deps.Audit

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(globalLimit))

	v1 := r.Group("/v1")

	v1.GET("/health", Health(deps.HealthUC))
	v1.GET("/categories", ListCategories)

	if cfg.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.CSRFMiddleware(cfg.IsProduction()))
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg.JWTSecret, deps.AuthUC))

	NewJobHandler(v1, protected, middleware.RateLimitMiddleware(writeLimit), deps.JobUC)
	NewProfileHandler(protected, deps.AuthUC, deps.JobUC)

	return r
}
