// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vaultpay/backend/config"
	"github.com/vaultpay/backend/internal/application/usecase/account"
	"github.com/vaultpay/backend/internal/application/usecase/analytics"
	"github.com/vaultpay/backend/internal/application/usecase/auth"
	"github.com/vaultpay/backend/internal/application/usecase/insight"
	"github.com/vaultpay/backend/internal/application/usecase/payment"
	usecasevault "github.com/vaultpay/backend/internal/application/usecase/vault"
	"github.com/vaultpay/backend/internal/infra/server/router"
	"github.com/vaultpay/backend/internal/integration/adapters"
	"github.com/vaultpay/backend/internal/integration/entrypoint/controller"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
	"github.com/vaultpay/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories and the transactional ledger
	ledger := persistence.NewLedgerStore(db, cfg.Database.TxTimeout)
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewBankAccountRepository(db)
	vaultRepo := persistence.NewVaultRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	analyticsRepo := persistence.NewAnalyticsRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	gateway := adapters.NewSimulatedGateway(adapters.GatewayConfig{
		SuccessRate: cfg.Gateway.SuccessRate,
		MinLatency:  cfg.Gateway.MinLatency,
		MaxLatency:  cfg.Gateway.MaxLatency,
	})
	idempotencyStore := adapters.NewRedisIdempotencyStore(redisClient, cfg.Redis.IdempotencyTTL)
	insightService := adapters.NewGeminiService(cfg.Insight.GeminiAPIKey, cfg.Insight.Model)

	maxPayment, err := decimal.NewFromString(cfg.Gateway.MaxAmount)
	if err != nil {
		maxPayment = decimal.NewFromInt(100000)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create account use cases
	linkAccountUseCase := account.NewLinkAccountUseCase(ledger)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	accountSummaryUseCase := account.NewGetAccountSummaryUseCase(accountRepo, vaultRepo)
	setPrimaryUseCase := account.NewSetPrimaryUseCase(ledger)
	unlinkAccountUseCase := account.NewUnlinkAccountUseCase(ledger)
	updateBalanceUseCase := account.NewUpdateBalanceUseCase(ledger)

	// Create vault use cases
	createVaultUseCase := usecasevault.NewCreateVaultUseCase(ledger)
	updateVaultUseCase := usecasevault.NewUpdateVaultUseCase(ledger)
	deleteVaultUseCase := usecasevault.NewDeleteVaultUseCase(ledger)
	listVaultsUseCase := usecasevault.NewListVaultsUseCase(vaultRepo)
	getVaultUseCase := usecasevault.NewGetVaultUseCase(vaultRepo, transactionRepo)
	vaultSummaryUseCase := usecasevault.NewGetVaultSummaryUseCase(accountRepo, vaultRepo)

	// Create payment use cases
	makePaymentUseCase := payment.NewMakePaymentUseCase(ledger, gateway, idempotencyStore, maxPayment)
	listTransactionsUseCase := payment.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := payment.NewGetTransactionUseCase(transactionRepo)

	// Create analytics use cases
	spendingByCategoryUseCase := analytics.NewSpendingByCategoryUseCase(analyticsRepo)
	spendingOverTimeUseCase := analytics.NewSpendingOverTimeUseCase(analyticsRepo)
	spendingByVaultUseCase := analytics.NewSpendingByVaultUseCase(analyticsRepo)
	vaultAnalyticsUseCase := analytics.NewVaultAnalyticsUseCase(vaultRepo, transactionRepo, analyticsRepo)
	userSummaryUseCase := analytics.NewUserSummaryUseCase(vaultRepo, transactionRepo)
	reconcileVaultUseCase := analytics.NewReconcileVaultUseCase(vaultRepo, transactionRepo)

	// Create insight use cases
	generateInsightsUseCase := insight.NewGenerateInsightsUseCase(
		spendingByCategoryUseCase,
		spendingByVaultUseCase,
		insightService,
	)

	// Create controllers
	healthController := controller.NewHealthController(db)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
	)

	accountController := controller.NewAccountController(
		linkAccountUseCase,
		listAccountsUseCase,
		getAccountUseCase,
		accountSummaryUseCase,
		setPrimaryUseCase,
		unlinkAccountUseCase,
		updateBalanceUseCase,
	)

	vaultController := controller.NewVaultController(
		createVaultUseCase,
		updateVaultUseCase,
		deleteVaultUseCase,
		listVaultsUseCase,
		getVaultUseCase,
		vaultSummaryUseCase,
	)

	paymentController := controller.NewPaymentController(
		makePaymentUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
	)

	analyticsController := controller.NewAnalyticsController(
		spendingByCategoryUseCase,
		spendingOverTimeUseCase,
		spendingByVaultUseCase,
		vaultAnalyticsUseCase,
		userSummaryUseCase,
		reconcileVaultUseCase,
	)

	insightController := controller.NewInsightController(generateInsightsUseCase)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		vaultController,
		paymentController,
		analyticsController,
		insightController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
