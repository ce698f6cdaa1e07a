package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoadCurveAnalysis stores the outcome of one load-curve analysis request:
// the aggregate statistics plus the recommended mix returned by the AI
// gateway (kept verbatim as JSON).
type LoadCurveAnalysis struct {
	AnalysisID      uuid.UUID      `gorm:"column:analysis_id;type:uuid;primaryKey" json:"analysis_id"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	SampleCount     int            `gorm:"column:sample_count;not null" json:"sample_count"`
	TotalKWh        float64        `gorm:"column:total_kwh;type:decimal(18,2);not null" json:"total_kwh"`
	AverageDailyKWh float64        `gorm:"column:average_daily_kwh;type:decimal(18,2);not null" json:"average_daily_kwh"`
	PeakKW          float64        `gorm:"column:peak_kw;type:decimal(18,2);not null" json:"peak_kw"`
	Pattern         string         `gorm:"column:pattern;type:varchar(20);not null" json:"pattern"`
	BucketShares    datatypes.JSON `gorm:"column:bucket_shares" json:"bucket_shares"`
	RecommendedMix  datatypes.JSON `gorm:"column:recommended_mix" json:"recommended_mix"`
	CreatedAt       time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (LoadCurveAnalysis) TableName() string {
	return "LoadCurveAnalyses"
}

func (a *LoadCurveAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.AnalysisID == uuid.Nil {
		a.AnalysisID = uuid.New()
	}
	return nil
}
