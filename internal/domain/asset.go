package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset categories. The marketplace only trades these three kinds.
const (
	CategoryPV      = "PV"
	CategoryWind    = "Wind"
	CategoryBattery = "Battery"
)

// Asset is an energy asset offered for fractional ownership.
// Read-only from the API's perspective; rows are created by seeding/ops.
type Asset struct {
	AssetID         uuid.UUID `gorm:"column:asset_id;type:uuid;primaryKey" json:"asset_id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	Category        string    `gorm:"column:category;type:varchar(20);not null" json:"category"`
	CapacityKW      float64   `gorm:"column:capacity_kw;type:decimal(12,2);not null" json:"capacity_kw"`
	PricePerPercent float64   `gorm:"column:price_per_percent;type:decimal(18,2);not null" json:"price_per_percent"`
	Location        string    `gorm:"column:location" json:"location"`
	Description     string    `gorm:"column:description" json:"description"`
	ImageURL        string    `gorm:"column:image_url" json:"image_url"`
	CreatedAt       time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Asset) TableName() string {
	return "Assets"
}

// BeforeCreate: never insert zero UUID for primary key; generate random when not set.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	return nil
}
