package routes

import (
	"trash2trade/internal/adapters/http/handlers"
	"trash2trade/internal/adapters/http/middleware"
	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/config"
	"trash2trade/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	resetTokenRepo := repositories.NewPasswordResetTokenRepository(db)
	pickupRepo := repositories.NewPickupRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, resetTokenRepo, cfg)
	pickupService := services.NewPickupService(pickupRepo)
	rewardService := services.NewRewardService(rewardRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	pickupHandler := handlers.NewPickupHandler(pickupService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Pickup routes (authenticated)
	pickupRoutes := api.Group("/pickups")
	pickupRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPickupRoutes(pickupRoutes, pickupHandler)

	// Reward routes (catalog reads are public, redemption requires auth)
	rewardRoutes := api.Group("/rewards")
	setupRewardRoutes(rewardRoutes, rewardHandler, cfg)

	// Payment routes (authenticated)
	paymentRoutes := api.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Dashboard routes (authenticated)
	dashboardRoutes := api.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.GetDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/profile", middleware.AuthMiddleware(cfg), handler.Profile)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupPickupRoutes configures pickup routes. Static paths register before
// the :id routes so fiber does not swallow them as IDs.
func setupPickupRoutes(router fiber.Router, handler *handlers.PickupHandler) {
	router.Post("/", middleware.CitizenOnly(), handler.Create)
	router.Get("/my", handler.ListMine)
	router.Get("/collector", middleware.CollectorOnly(), handler.ListForCollector)
	router.Get("/available", middleware.CollectorOnly(), handler.ListAvailable)
	router.Get("/stats", handler.Stats)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Delete("/:id", handler.Delete)
}

// setupRewardRoutes configures reward routes. The catalog is browsable
// without an account; redeeming and history need one.
func setupRewardRoutes(router fiber.Router, handler *handlers.RewardHandler, cfg *config.Config) {
	router.Get("/", handler.ListCatalog)
	router.Get("/my", middleware.AuthMiddleware(cfg), handler.History)
	router.Post("/redeem", middleware.AuthMiddleware(cfg), handler.Redeem)
	router.Get("/:id", handler.GetByID)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.History)
	router.Get("/:id", handler.GetByID)
}
