package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/application/usecase/analytics"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles the read-side reporting endpoints.
type AnalyticsController struct {
	byCategoryUseCase *analytics.SpendingByCategoryUseCase
	overTimeUseCase   *analytics.SpendingOverTimeUseCase
	byVaultUseCase    *analytics.SpendingByVaultUseCase
	vaultUseCase      *analytics.VaultAnalyticsUseCase
	summaryUseCase    *analytics.UserSummaryUseCase
	reconcileUseCase  *analytics.ReconcileVaultUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	byCategoryUseCase *analytics.SpendingByCategoryUseCase,
	overTimeUseCase *analytics.SpendingOverTimeUseCase,
	byVaultUseCase *analytics.SpendingByVaultUseCase,
	vaultUseCase *analytics.VaultAnalyticsUseCase,
	summaryUseCase *analytics.UserSummaryUseCase,
	reconcileUseCase *analytics.ReconcileVaultUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		byCategoryUseCase: byCategoryUseCase,
		overTimeUseCase:   overTimeUseCase,
		byVaultUseCase:    byVaultUseCase,
		vaultUseCase:      vaultUseCase,
		summaryUseCase:    summaryUseCase,
		reconcileUseCase:  reconcileUseCase,
	}
}

// SpendingByCategory handles GET /analytics/spending-by-category requests.
func (c *AnalyticsController) SpendingByCategory(ctx *gin.Context) {
	userID, rng, ok := c.scope(ctx)
	if !ok {
		return
	}

	output, err := c.byCategoryUseCase.Execute(ctx.Request.Context(), analytics.SpendingByCategoryInput{
		UserID: userID,
		Range:  rng,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingByCategoryResponse(output))
}

// SpendingOverTime handles GET /analytics/spending-over-time requests.
func (c *AnalyticsController) SpendingOverTime(ctx *gin.Context) {
	userID, rng, ok := c.scope(ctx)
	if !ok {
		return
	}

	granularity := analytics.Granularity(ctx.DefaultQuery("granularity", string(analytics.GranularityDay)))

	output, err := c.overTimeUseCase.Execute(ctx.Request.Context(), analytics.SpendingOverTimeInput{
		UserID:      userID,
		Range:       rng,
		Granularity: granularity,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingOverTimeResponse(output, granularity))
}

// SpendingByVault handles GET /analytics/spending-by-vault requests.
func (c *AnalyticsController) SpendingByVault(ctx *gin.Context) {
	userID, rng, ok := c.scope(ctx)
	if !ok {
		return
	}

	output, err := c.byVaultUseCase.Execute(ctx.Request.Context(), analytics.SpendingByVaultInput{
		UserID: userID,
		Range:  rng,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingByVaultResponse(output))
}

// VaultAnalytics handles GET /analytics/vaults/:id requests.
func (c *AnalyticsController) VaultAnalytics(ctx *gin.Context) {
	userID, rng, ok := c.scope(ctx)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid vault id"})
		return
	}

	output, err := c.vaultUseCase.Execute(ctx.Request.Context(), analytics.VaultAnalyticsInput{
		UserID:  userID,
		VaultID: vaultID,
		Range:   rng,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVaultAnalyticsResponse(output))
}

// UserSummary handles GET /analytics/summary requests.
func (c *AnalyticsController) UserSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.UserSummaryInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserSummaryResponse(output))
}

// Reconcile handles POST /analytics/reconcile requests. An optional vault_id
// query narrows the check to one vault.
func (c *AnalyticsController) Reconcile(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := analytics.ReconcileVaultInput{UserID: userID}
	if raw := ctx.Query("vault_id"); raw != "" {
		vaultID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid vault_id"})
			return
		}
		input.VaultID = &vaultID
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconciliationResponse(output))
}

// scope extracts the authenticated user and the optional date range.
func (c *AnalyticsController) scope(ctx *gin.Context) (uuid.UUID, adapter.AnalyticsRange, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return uuid.Nil, adapter.AnalyticsRange{}, false
	}

	start, end, ok := parseDateRange(ctx)
	if !ok {
		return uuid.Nil, adapter.AnalyticsRange{}, false
	}

	return userID, adapter.AnalyticsRange{Start: start, End: end}, true
}
