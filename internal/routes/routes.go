// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"palenque/internal/handlers"
	"palenque/internal/middleware"
	"palenque/internal/models"
	"palenque/internal/repositories"
	"palenque/internal/services/auth"
	"palenque/internal/services/ledger"
	"palenque/internal/services/limits"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	limitsService := limits.NewService(settingRepo, repositories.CacheService, limits.DefaultCacheTTL)
	ledgerService := ledger.NewService(
		ledgerRepo,
		limitsService,
		repositories.CacheService,
		&ledger.NoopMetricsCollector{},
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, ledgerService, userRepo)
	walletHandler := handlers.NewWalletHandler(ledgerService)
	adminHandler := handlers.NewAdminHandler(ledgerService, limitsService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Owner surface
	wallet := api.Group("/wallet", authMiddleware.Handler)
	wallet.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	wallet.Post("/deposits", middleware.HasPermission(models.PermissionOperationCreate), walletHandler.RequestDeposit)
	wallet.Post("/withdrawals", middleware.HasPermission(models.PermissionOperationCreate), walletHandler.RequestWithdrawal)
	wallet.Get("/operations", middleware.HasPermission(models.PermissionOperationRead), walletHandler.ListMyOperations)
	wallet.Get("/transactions", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetTransactionHistory)

	api.Post("/logout", authMiddleware.Handler, authHandler.Logout)

	// Admin surface
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)
	admin.Get("/operations", adminHandler.ListOperations)
	admin.Get("/operations/stats", adminHandler.GetOperationStats)
	admin.Post("/operations/:id/approve", adminHandler.ApproveOperation)
	admin.Post("/operations/:id/complete", adminHandler.CompleteOperation)
	admin.Post("/operations/:id/reject", adminHandler.RejectOperation)
	admin.Post("/operations/:id/proof", adminHandler.AttachWithdrawalProof)
	admin.Post("/adjustments", adminHandler.AdjustBalance)
	admin.Get("/wallets/:userID/reconciliation", adminHandler.ReconcileWallet)
	admin.Get("/settings/:key", adminHandler.GetLimitSetting)
	admin.Put("/settings/:key", adminHandler.UpdateLimitSetting)
}
