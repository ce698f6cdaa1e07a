package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trade kinds stored in Transaction.Type.
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// Transaction is the append-only trade ledger. Exactly one of BuyerID or
// SellerID is set per row; the marketplace does not match counterparties.
// Rows are never updated or deleted.
type Transaction struct {
	TxID            uuid.UUID  `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	AssetID         uuid.UUID  `gorm:"column:asset_id;type:uuid;not null" json:"asset_id"`
	BuyerID         *uuid.UUID `gorm:"column:buyer_id;type:uuid" json:"buyer_id"`
	SellerID        *uuid.UUID `gorm:"column:seller_id;type:uuid" json:"seller_id"`
	Percentage      float64    `gorm:"column:percentage;type:decimal(5,2);not null" json:"percentage"`
	PricePerPercent float64    `gorm:"column:price_per_percent;type:decimal(18,2);not null" json:"price_per_percent"`
	TotalPrice      float64    `gorm:"column:total_price;type:decimal(18,2);not null" json:"total_price"`
	Type            string     `gorm:"column:type;type:varchar(10);not null" json:"type"`
	CreatedAt       time.Time  `gorm:"column:createdAt" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}
