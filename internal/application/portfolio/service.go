package portfolio

import (
	"context"
	"math"

	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service builds the caller's portfolio view.
type Service struct {
	DB *gorm.DB
}

// Position is one ownership row joined with asset display data.
type Position struct {
	OwnershipID     uuid.UUID `json:"ownership_id"`
	AssetID         uuid.UUID `json:"asset_id"`
	AssetName       string    `json:"asset_name"`
	Category        string    `json:"category"`
	CapacityKW      float64   `json:"capacity_kw"`
	Percentage      float64   `json:"percentage"`
	PricePerPercent float64   `json:"price_per_percent"`
	CurrentValue    float64   `json:"current_value"`
}

// ViewPortfolio returns all positions for a user with current values
// (percentage times the asset's price per percent).
func (s *Service) ViewPortfolio(ctx context.Context, userID uuid.UUID) ([]Position, error) {
	var ownerships []domain.Ownership
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&ownerships).Error; err != nil {
		return nil, err
	}
	if len(ownerships) == 0 {
		return []Position{}, nil
	}

	assetIDs := make([]uuid.UUID, 0, len(ownerships))
	for _, o := range ownerships {
		assetIDs = append(assetIDs, o.AssetID)
	}
	var assets []domain.Asset
	if err := s.DB.WithContext(ctx).Where("asset_id IN ?", assetIDs).Find(&assets).Error; err != nil {
		return nil, err
	}
	assetMap := make(map[uuid.UUID]domain.Asset, len(assets))
	for _, a := range assets {
		assetMap[a.AssetID] = a
	}

	out := make([]Position, 0, len(ownerships))
	for _, o := range ownerships {
		pos := Position{
			OwnershipID: o.OwnershipID,
			AssetID:     o.AssetID,
			Percentage:  o.Percentage,
		}
		if a, ok := assetMap[o.AssetID]; ok {
			pos.AssetName = a.Name
			pos.Category = a.Category
			pos.CapacityKW = a.CapacityKW
			pos.PricePerPercent = a.PricePerPercent
			pos.CurrentValue = math.Round(o.Percentage*a.PricePerPercent*100) / 100
		}
		out = append(out, pos)
	}
	return out, nil
}
