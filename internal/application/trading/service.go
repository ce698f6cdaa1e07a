package trading

import (
	"context"
	"errors"
	"math"

	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Business-rule errors. Handlers map these to HTTP status codes.
var (
	ErrInvalidPercentage     = errors.New("percentage must be greater than 0 and at most 100")
	ErrInvalidMode           = errors.New("mode must be \"buy\" or \"sell\"")
	ErrExceedsFullOwnership  = errors.New("cannot exceed full ownership")
	ErrInsufficientOwnership = errors.New("insufficient ownership to sell")
	ErrTradeConflict         = errors.New("trade conflict, please retry")
)

// maxAttempts bounds the retry-on-conflict loop for concurrent trades
// against the same (user, asset) pair.
const maxAttempts = 3

// Service settles buy/sell trades against the ownership ledger.
type Service struct {
	Store Store
}

// TradeInput is one settlement instruction. The price per percent is
// always re-read from the asset row; callers cannot supply it.
type TradeInput struct {
	AssetID    uuid.UUID
	UserID     uuid.UUID
	Percentage float64
	Mode       string
}

// ExecuteTrade validates the instruction, applies the ownership delta and
// appends the ledger row in one storage transaction, retrying on
// concurrent-update conflicts. Returns the new ownership percentage.
func (s *Service) ExecuteTrade(ctx context.Context, in TradeInput) (float64, error) {
	if in.Percentage <= 0 || in.Percentage > 100 {
		return 0, ErrInvalidPercentage
	}
	if in.Mode != domain.TradeBuy && in.Mode != domain.TradeSell {
		return 0, ErrInvalidMode
	}

	var newOwnership float64
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.Store.InTx(ctx, func(st Store) error {
			asset, err := st.Asset(ctx, in.AssetID)
			if err != nil {
				return err
			}

			current, _, err := st.Ownership(ctx, in.UserID, in.AssetID)
			if err != nil {
				return err
			}

			var next float64
			switch in.Mode {
			case domain.TradeBuy:
				next = round2(current + in.Percentage)
				if next > 100 {
					return ErrExceedsFullOwnership
				}
			case domain.TradeSell:
				if current < in.Percentage {
					return ErrInsufficientOwnership
				}
				next = round2(current - in.Percentage)
			}

			if err := st.CompareAndSetOwnership(ctx, in.UserID, in.AssetID, current, next); err != nil {
				return err
			}

			record := domain.Transaction{
				AssetID:         in.AssetID,
				Percentage:      in.Percentage,
				PricePerPercent: asset.PricePerPercent,
				TotalPrice:      round2(in.Percentage * asset.PricePerPercent),
				Type:            in.Mode,
			}
			if in.Mode == domain.TradeBuy {
				userID := in.UserID
				record.BuyerID = &userID
			} else {
				userID := in.UserID
				record.SellerID = &userID
			}
			if err := st.AppendTransaction(ctx, &record); err != nil {
				return err
			}

			newOwnership = next
			return nil
		})
		if err == nil {
			log.Info().
				Str("user_id", in.UserID.String()).
				Str("asset_id", in.AssetID.String()).
				Str("mode", in.Mode).
				Float64("percentage", in.Percentage).
				Float64("new_ownership", newOwnership).
				Msg("Trade settled")
			return newOwnership, nil
		}
		if errors.Is(err, ErrConflict) {
			continue
		}
		return 0, err
	}
	return 0, ErrTradeConflict
}

// round2 rounds to 2 decimal places (ledger money/percentage precision).
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
