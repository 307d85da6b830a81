package v1

import (
	"net/http"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	AuthUC    domain.AuthUsecase
	AdminUC   domain.AdminUsecase
	GithubUC  domain.GithubUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.AllowedOrigins, deps.Config.Environment)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	contactGroup := api.Group("")
	contactGroup.Use(middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)))
	NewContactHandler(contactGroup, deps.ContactUC)

	NewGithubHandler(api, deps.GithubUC)

	loginGroup := api.Group("")
	loginGroup.Use(middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(loginGroup, protected, deps.AuthUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
