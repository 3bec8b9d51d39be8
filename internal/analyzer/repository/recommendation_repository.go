package repository

import (
	"context"

	"golang-stock-analyzer/internal/entity"

	"gorm.io/gorm"
)

// RecommendationRepository defines the interface for persisting and querying
// stock recommendations.
type RecommendationRepository interface {
	SaveAll(ctx context.Context, recommendations []entity.StockRecommendation) error
	FindLatestBatch(ctx context.Context) ([]entity.StockRecommendation, error)
	FindBySymbol(ctx context.Context, symbol string) ([]entity.StockRecommendation, error)
}

// NewRecommendationRepository creates a new instance of RecommendationRepository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

type recommendationRepository struct {
	db *gorm.DB
}

// SaveAll persists a batch of recommendations in a single transaction. The
// database assigns record identities.
func (r *recommendationRepository) SaveAll(ctx context.Context, recommendations []entity.StockRecommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&recommendations, 50).Error
	})
}

// FindLatestBatch returns all recommendations belonging to the most recent
// analysis run.
func (r *recommendationRepository) FindLatestBatch(ctx context.Context) ([]entity.StockRecommendation, error) {
	var recommendations []entity.StockRecommendation
	err := r.db.WithContext(ctx).
		Where("analysis_date = (?)", r.db.Model(&entity.StockRecommendation{}).Select("MAX(analysis_date)")).
		Order("symbol ASC").
		Find(&recommendations).Error
	if err != nil {
		return nil, err
	}
	return recommendations, nil
}

// FindBySymbol returns the recommendation history for one symbol, newest first.
func (r *recommendationRepository) FindBySymbol(ctx context.Context, symbol string) ([]entity.StockRecommendation, error) {
	var recommendations []entity.StockRecommendation
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("generated_at DESC").
		Find(&recommendations).Error
	if err != nil {
		return nil, err
	}
	return recommendations, nil
}
