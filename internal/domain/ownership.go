package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ownership tracks how much of an asset a user holds, as a percentage
// in (0, 100]. At most one row per (user, asset); the row is deleted when
// the holding reaches exactly zero.
type Ownership struct {
	OwnershipID uuid.UUID `gorm:"column:ownership_id;type:uuid;primaryKey" json:"ownership_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_asset" json:"user_id"`
	AssetID     uuid.UUID `gorm:"column:asset_id;type:uuid;not null;uniqueIndex:idx_user_asset" json:"asset_id"`
	Percentage  float64   `gorm:"column:percentage;type:decimal(5,2);not null" json:"percentage"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Ownership) TableName() string {
	return "Ownerships"
}

func (o *Ownership) BeforeCreate(tx *gorm.DB) error {
	if o.OwnershipID == uuid.Nil {
		o.OwnershipID = uuid.New()
	}
	return nil
}
