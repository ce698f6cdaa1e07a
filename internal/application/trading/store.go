package trading

import (
	"context"
	"errors"
	"strings"

	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConflict reports that the ownership row changed between read and
// write. The settlement loop retries on it.
var ErrConflict = errors.New("ownership version conflict")

// ErrAssetNotFound reports an unknown asset id.
var ErrAssetNotFound = errors.New("Asset not found")

// Store abstracts the marketplace ledger so settlement is testable
// without a live database.
type Store interface {
	// Asset returns the authoritative asset row (price source).
	Asset(ctx context.Context, assetID uuid.UUID) (domain.Asset, error)
	// Ownership returns the caller's current percentage and whether a row exists.
	Ownership(ctx context.Context, userID, assetID uuid.UUID) (float64, bool, error)
	// CompareAndSetOwnership moves the percentage from current to next only
	// if the stored value still equals current. current == 0 inserts a new
	// row, next == 0 deletes the row. Returns ErrConflict when the stored
	// value moved.
	CompareAndSetOwnership(ctx context.Context, userID, assetID uuid.UUID, current, next float64) error
	// AppendTransaction appends one immutable ledger row.
	AppendTransaction(ctx context.Context, tx *domain.Transaction) error
	// InTx runs fn against a transactional view of the store. The ownership
	// write and the ledger append always share one transaction.
	InTx(ctx context.Context, fn func(Store) error) error
}

// GormStore is the production Store backed by GORM.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Asset(ctx context.Context, assetID uuid.UUID) (domain.Asset, error) {
	var asset domain.Asset
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Asset{}, ErrAssetNotFound
		}
		return domain.Asset{}, err
	}
	return asset, nil
}

func (s *GormStore) Ownership(ctx context.Context, userID, assetID uuid.UUID) (float64, bool, error) {
	var o domain.Ownership
	err := s.DB.WithContext(ctx).Where("user_id = ? AND asset_id = ?", userID, assetID).First(&o).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return o.Percentage, true, nil
}

func (s *GormStore) CompareAndSetOwnership(ctx context.Context, userID, assetID uuid.UUID, current, next float64) error {
	db := s.DB.WithContext(ctx)

	if current == 0 {
		// First purchase: the unique (user, asset) index rejects a row a
		// concurrent request inserted since our read.
		err := db.Create(&domain.Ownership{
			UserID:     userID,
			AssetID:    assetID,
			Percentage: next,
		}).Error
		if err != nil && isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}

	if next == 0 {
		res := db.Where("user_id = ? AND asset_id = ? AND percentage = ?", userID, assetID, current).
			Delete(&domain.Ownership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	}

	res := db.Model(&domain.Ownership{}).
		Where("user_id = ? AND asset_id = ? AND percentage = ?", userID, assetID, current).
		Update("percentage", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *GormStore) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	return s.DB.WithContext(ctx).Create(tx).Error
}

func (s *GormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

// isDuplicateKey matches unique-constraint violations across drivers
// (Postgres with TranslateError, sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
