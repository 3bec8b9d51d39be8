package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RecommendationHandler handles HTTP requests for recommendations and manual
// analysis triggers.
type RecommendationHandler struct {
	analysisService service.DailyAnalysisService
	logger          *logger.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(analysisService service.DailyAnalysisService, logger *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the recommendation routes to the Echo group.
func (h *RecommendationHandler) RegisterRoutes(apiV1 *echo.Group) {
	recommendations := apiV1.Group("/recommendations")
	recommendations.GET("", h.GetLatestBatch)
	recommendations.GET("/:symbol", h.GetBySymbol)

	analysis := apiV1.Group("/analysis")
	analysis.POST("/run", h.TriggerAnalysis)
}

// GetLatestBatch godoc
// @Summary Get the latest recommendation batch
// @Description Returns all recommendations produced by the most recent analysis run
// @Tags recommendations
// @Produce  json
// @Success 200 {array} dto.RecommendationResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) GetLatestBatch(c echo.Context) error {
	recommendations, err := h.analysisService.LatestBatch(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get latest batch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get latest recommendations"})
	}

	responses := make([]dto.RecommendationResponse, 0, len(recommendations))
	for i := range recommendations {
		responses = append(responses, dto.NewRecommendationResponse(&recommendations[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetBySymbol godoc
// @Summary Get recommendations for a symbol
// @Description Returns the stored recommendation history for one symbol, newest first
// @Tags recommendations
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {array} dto.RecommendationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /recommendations/{symbol} [get]
func (h *RecommendationHandler) GetBySymbol(c echo.Context) error {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid symbol"})
	}

	recommendations, err := h.analysisService.RecommendationsBySymbol(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("Failed to get recommendations by symbol", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get recommendations"})
	}

	responses := make([]dto.RecommendationResponse, 0, len(recommendations))
	for i := range recommendations {
		responses = append(responses, dto.NewRecommendationResponse(&recommendations[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

// TriggerAnalysis godoc
// @Summary Trigger a manual analysis run
// @Description Starts a full analysis run in the background; rejected while another run is active
// @Tags analysis
// @Produce  json
// @Success 202 {object} dto.TriggerAnalysisResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /analysis/run [post]
func (h *RecommendationHandler) TriggerAnalysis(c echo.Context) error {
	if err := h.analysisService.TriggerAsync(c.Request().Context()); err != nil {
		if errors.Is(err, service.ErrAnalysisInProgress) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "An analysis run is already in progress"})
		}
		h.logger.Error("Failed to trigger analysis run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to trigger analysis run"})
	}

	return c.JSON(http.StatusAccepted, dto.TriggerAnalysisResponse{
		Status:  "accepted",
		Message: "Daily analysis run started",
	})
}
