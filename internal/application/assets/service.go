package assets

import (
	"context"
	"errors"

	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownCategory = errors.New("category must be PV, Wind or Battery")

// Service exposes the read-only asset catalogue.
type Service struct {
	DB *gorm.DB
}

// GetAllAssets lists the catalogue, optionally filtered by category.
func (s *Service) GetAllAssets(ctx context.Context, category string) ([]domain.Asset, error) {
	q := s.DB.WithContext(ctx).Order(`"createdAt" ASC`)
	if category != "" {
		switch category {
		case domain.CategoryPV, domain.CategoryWind, domain.CategoryBattery:
			q = q.Where("category = ?", category)
		default:
			return nil, ErrUnknownCategory
		}
	}
	var out []domain.Asset
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetAssetByID returns a single asset.
func (s *Service) GetAssetByID(ctx context.Context, assetID uuid.UUID) (domain.Asset, error) {
	var asset domain.Asset
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Asset{}, errors.New("Asset not found")
		}
		return domain.Asset{}, err
	}
	return asset, nil
}
