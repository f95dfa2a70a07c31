package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultpay/backend/internal/application/adapter"
	"github.com/vaultpay/backend/internal/application/usecase/insight"
	"github.com/vaultpay/backend/internal/integration/entrypoint/dto"
	"github.com/vaultpay/backend/internal/integration/entrypoint/middleware"
)

// InsightController handles the spending-insight endpoint.
type InsightController struct {
	generateUseCase *insight.GenerateInsightsUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(generateUseCase *insight.GenerateInsightsUseCase) *InsightController {
	return &InsightController{
		generateUseCase: generateUseCase,
	}
}

// Generate handles GET /insights requests.
func (c *InsightController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	start, end, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), insight.GenerateInsightsInput{
		UserID: userID,
		Range:  adapter.AnalyticsRange{Start: start, End: end},
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InsightsResponse{
		Insights:  output.Insights,
		Generated: output.Generated,
	})
}
