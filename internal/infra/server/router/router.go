// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/vaultpay/backend/internal/integration/entrypoint/controller"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	accountController   *controller.AccountController
	vaultController     *controller.VaultController
	paymentController   *controller.PaymentController
	analyticsController *controller.AnalyticsController
	insightController   *controller.InsightController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	vaultController *controller.VaultController,
	paymentController *controller.PaymentController,
	analyticsController *controller.AnalyticsController,
	insightController *controller.InsightController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		accountController:   accountController,
		vaultController:     vaultController,
		paymentController:   paymentController,
		analyticsController: analyticsController,
		insightController:   insightController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Health)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		}

		// Account routes (require authentication)
		accounts := v1.Group("/accounts")
		accounts.Use(r.authMiddleware.Authenticate())
		{
			accounts.POST("", r.accountController.Link)
			accounts.GET("", r.accountController.List)
			accounts.GET("/:id", r.accountController.Get)
			accounts.GET("/:id/summary", r.accountController.Summary)
			accounts.GET("/:id/vault-summary", r.vaultController.Summary)
			accounts.PUT("/:id/primary", r.accountController.SetPrimary)
			accounts.POST("/:id/balance", r.accountController.UpdateBalance)
			accounts.DELETE("/:id", r.accountController.Unlink)
		}

		// Vault routes (require authentication)
		vaults := v1.Group("/vaults")
		vaults.Use(r.authMiddleware.Authenticate())
		{
			vaults.POST("", r.vaultController.Create)
			vaults.GET("", r.vaultController.List)
			vaults.GET("/:id", r.vaultController.Get)
			vaults.PATCH("/:id", r.vaultController.Update)
			vaults.DELETE("/:id", r.vaultController.Delete)
		}

		// Payment routes (require authentication)
		payments := v1.Group("/payments")
		payments.Use(r.authMiddleware.Authenticate())
		{
			payments.POST("", r.paymentController.MakePayment)
		}

		// Transaction routes (require authentication)
		transactions := v1.Group("/transactions")
		transactions.Use(r.authMiddleware.Authenticate())
		{
			transactions.GET("", r.paymentController.ListTransactions)
			transactions.GET("/:id", r.paymentController.GetTransaction)
		}

		// Analytics routes (require authentication)
		analytics := v1.Group("/analytics")
		analytics.Use(r.authMiddleware.Authenticate())
		{
			analytics.GET("/spending-by-category", r.analyticsController.SpendingByCategory)
			analytics.GET("/spending-over-time", r.analyticsController.SpendingOverTime)
			analytics.GET("/spending-by-vault", r.analyticsController.SpendingByVault)
			analytics.GET("/vaults/:id", r.analyticsController.VaultAnalytics)
			analytics.GET("/summary", r.analyticsController.UserSummary)
			analytics.POST("/reconcile", r.analyticsController.Reconcile)
		}

		// Insight routes (require authentication)
		insights := v1.Group("/insights")
		insights.Use(r.authMiddleware.Authenticate())
		{
			insights.GET("", r.insightController.Generate)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
