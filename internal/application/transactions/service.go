package transactions

import (
	"context"

	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// FormattedTx is one trade-history row with the asset name resolved.
type FormattedTx struct {
	TxID            uuid.UUID   `json:"tx_id"`
	AssetID         uuid.UUID   `json:"asset_id"`
	AssetName       string      `json:"asset_name"`
	Type            string      `json:"type"`
	Percentage      float64     `json:"percentage"`
	PricePerPercent float64     `json:"price_per_percent"`
	TotalPrice      float64     `json:"total_price"`
	CreatedAt       interface{} `json:"created_at"`
}

// ViewTransactions returns the caller's trade history, newest first.
func (s *Service) ViewTransactions(ctx context.Context, userID uuid.UUID) ([]FormattedTx, error) {
	var txs []domain.Transaction
	if err := s.DB.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order(`"createdAt" DESC`).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return []FormattedTx{}, nil
	}

	assetIDs := map[uuid.UUID]bool{}
	for _, tx := range txs {
		assetIDs[tx.AssetID] = true
	}
	ids := make([]uuid.UUID, 0, len(assetIDs))
	for id := range assetIDs {
		ids = append(ids, id)
	}
	nameMap := map[uuid.UUID]string{}
	var assets []domain.Asset
	s.DB.WithContext(ctx).Where("asset_id IN ?", ids).Select("asset_id, name").Find(&assets)
	for _, a := range assets {
		nameMap[a.AssetID] = a.Name
	}

	out := make([]FormattedTx, len(txs))
	for i, tx := range txs {
		out[i] = FormattedTx{
			TxID:            tx.TxID,
			AssetID:         tx.AssetID,
			AssetName:       nameMap[tx.AssetID],
			Type:            tx.Type,
			Percentage:      tx.Percentage,
			PricePerPercent: tx.PricePerPercent,
			TotalPrice:      tx.TotalPrice,
			CreatedAt:       tx.CreatedAt,
		}
	}
	return out, nil
}
