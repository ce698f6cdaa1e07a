package analysis

import (
	"context"
	"encoding/json"

	"gridshare-backend/internal/application/loadcurve"
	"gridshare-backend/internal/application/recommend"
	"gridshare-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service runs the full load-curve pipeline: parse, aggregate, ask the AI
// gateway for a mix, persist the outcome.
type Service struct {
	DB          *gorm.DB
	Recommender *recommend.Service
}

// Result is the response payload for one analysis request.
type Result struct {
	RecommendedMix recommend.Mix      `json:"recommended_mix"`
	Analysis       loadcurve.Analysis `json:"analysis"`
}

// Analyze processes one raw CSV load curve for the given user. The stored
// record keeps the aggregates and the mix exactly as returned by the
// gateway; a persistence failure aborts the request (no partial success).
func (s *Service) Analyze(ctx context.Context, userID uuid.UUID, fileContent string) (Result, error) {
	samples, err := loadcurve.ParseCSV(fileContent)
	if err != nil {
		return Result{}, err
	}
	agg, err := loadcurve.Aggregate(samples)
	if err != nil {
		return Result{}, err
	}

	mix, err := s.Recommender.RecommendMix(ctx, agg)
	if err != nil {
		return Result{}, err
	}

	shares, _ := json.Marshal(map[string]float64{
		"night":     agg.NightSharePct,
		"morning":   agg.MorningSharePct,
		"afternoon": agg.AfternoonSharePct,
		"evening":   agg.EveningSharePct,
	})
	mixJSON, _ := json.Marshal(mix)
	record := domain.LoadCurveAnalysis{
		UserID:          userID,
		SampleCount:     agg.SampleCount,
		TotalKWh:        agg.TotalKWh,
		AverageDailyKWh: agg.AverageDailyKWh,
		PeakKW:          agg.PeakKW,
		Pattern:         agg.Pattern,
		BucketShares:    datatypes.JSON(shares),
		RecommendedMix:  datatypes.JSON(mixJSON),
	}
	if err := s.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return Result{}, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Int("samples", agg.SampleCount).
		Str("pattern", agg.Pattern).
		Msg("Load curve analyzed")

	return Result{RecommendedMix: mix, Analysis: agg}, nil
}

// History returns the caller's past analyses, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]domain.LoadCurveAnalysis, error) {
	var records []domain.LoadCurveAnalysis
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(`"createdAt" DESC`).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
