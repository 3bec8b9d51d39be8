package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalysisService struct {
	latest     []entity.StockRecommendation
	latestErr  error
	bySymbol   map[string][]entity.StockRecommendation
	triggerErr error
}

func (s *stubAnalysisService) Run(ctx context.Context) (*dto.RunSummaryResponse, error) {
	return &dto.RunSummaryResponse{}, nil
}

func (s *stubAnalysisService) TriggerAsync(ctx context.Context) error {
	return s.triggerErr
}

func (s *stubAnalysisService) LatestBatch(ctx context.Context) ([]entity.StockRecommendation, error) {
	return s.latest, s.latestErr
}

func (s *stubAnalysisService) RecommendationsBySymbol(ctx context.Context, symbol string) ([]entity.StockRecommendation, error) {
	return s.bySymbol[symbol], nil
}

func newTestHandler(t *testing.T, svc service.DailyAnalysisService) (*echo.Echo, *RecommendationHandler) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	e := echo.New()
	handler := NewRecommendationHandler(svc, log)
	handler.RegisterRoutes(e.Group("/api/v1"))
	return e, handler
}

func TestRecommendationHandler_GetLatestBatch(t *testing.T) {
	svc := &stubAnalysisService{
		latest: []entity.StockRecommendation{
			{Symbol: "AAPL", CompanyName: "Apple Inc.", Recommendation: entity.RecommendationBuy, CurrentPrice: 100},
			{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Recommendation: entity.RecommendationHold, CurrentPrice: 300},
		},
	}
	e, _ := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var responses []dto.RecommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
	assert.Equal(t, "AAPL", responses[0].Symbol)
	assert.Equal(t, entity.RecommendationBuy, responses[0].Recommendation)
}

func TestRecommendationHandler_GetLatestBatchError(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{latestErr: errors.New("database down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecommendationHandler_GetBySymbolUppercasesParam(t *testing.T) {
	svc := &stubAnalysisService{
		bySymbol: map[string][]entity.StockRecommendation{
			"AAPL": {{Symbol: "AAPL", Recommendation: entity.RecommendationStrongBuy}},
		},
	}
	e, _ := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/aapl", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var responses []dto.RecommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 1)
	assert.Equal(t, "AAPL", responses[0].Symbol)
}

func TestRecommendationHandler_GetBySymbolUnknownReturnsEmpty(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/ZZZZ", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRecommendationHandler_TriggerAnalysis(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/run", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response dto.TriggerAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "accepted", response.Status)
}

func TestRecommendationHandler_TriggerAnalysisConflict(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{triggerErr: service.ErrAnalysisInProgress})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/run", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
