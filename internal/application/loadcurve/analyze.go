package loadcurve

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Parse/aggregation errors. Handlers report these as invalid-format (500)
// conditions per the API contract.
var (
	ErrNoSamples = errors.New("load curve contains no usable samples")
	ErrZeroSpan  = errors.New("load curve must span a positive time range")
)

// Consumption pattern labels.
const (
	PatternDaytime = "daytime-driven"
	PatternEvening = "evening-driven"
	PatternNight   = "night-driven"
	PatternMixed   = "mixed"
)

// Sample is one parsed load-curve row. Ephemeral; lives only for the
// duration of a single analysis request.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Analysis is the aggregate over one load curve. Shares are percentages
// of total consumption per six-hour time-of-day window.
type Analysis struct {
	SampleCount       int     `json:"sample_count"`
	TotalKWh          float64 `json:"total_kwh"`
	AverageDailyKWh   float64 `json:"average_daily_kwh"`
	PeakKW            float64 `json:"peak_kw"`
	NightSharePct     float64 `json:"night_share_pct"`
	MorningSharePct   float64 `json:"morning_share_pct"`
	AfternoonSharePct float64 `json:"afternoon_share_pct"`
	EveningSharePct   float64 `json:"evening_share_pct"`
	Pattern           string  `json:"pattern"`
}

// timestamp layouts accepted in CSV rows, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCSV parses raw CSV text with a header line followed by
// "timestamp,value" rows. Malformed rows are skipped silently (partial
// exports are common); only a curve with zero usable rows is an error.
func ParseCSV(raw string) ([]Sample, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	samples := make([]Sample, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) < 2 {
			continue
		}
		ts, ok := parseTimestamp(strings.TrimSpace(parts[0]))
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		samples = append(samples, Sample{Timestamp: ts, Value: value})
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Aggregate computes the analysis over the samples. Input order does not
// matter: samples are sorted by timestamp before the day span is taken
// from the first and last element.
func Aggregate(samples []Sample) (Analysis, error) {
	if len(samples) == 0 {
		return Analysis{}, ErrNoSamples
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	span := sorted[len(sorted)-1].Timestamp.Sub(sorted[0].Timestamp)
	if span <= 0 {
		return Analysis{}, ErrZeroSpan
	}
	spanDays := span.Hours() / 24

	var total, peak float64
	var night, morning, afternoon, evening float64
	for _, s := range sorted {
		total += s.Value
		if s.Value > peak {
			peak = s.Value
		}
		switch hour := s.Timestamp.Hour(); {
		case hour < 6:
			night += s.Value
		case hour < 12:
			morning += s.Value
		case hour < 18:
			afternoon += s.Value
		default:
			evening += s.Value
		}
	}
	if total == 0 {
		return Analysis{}, ErrNoSamples
	}

	nightPct := round2(night / total * 100)
	morningPct := round2(morning / total * 100)
	afternoonPct := round2(afternoon / total * 100)
	eveningPct := round2(evening / total * 100)

	return Analysis{
		SampleCount:       len(sorted),
		TotalKWh:          round2(total),
		AverageDailyKWh:   round2(total / spanDays),
		PeakKW:            round2(peak),
		NightSharePct:     nightPct,
		MorningSharePct:   morningPct,
		AfternoonSharePct: afternoonPct,
		EveningSharePct:   eveningPct,
		Pattern:           classify(nightPct, morningPct, afternoonPct, eveningPct),
	}, nil
}

// classify labels the curve by its dominant time-of-day window. A window
// must hold the strict maximum to drive the label (ties stay "mixed"),
// and the morning window never drives one.
func classify(night, morning, afternoon, evening float64) string {
	switch {
	case afternoon > night && afternoon > morning && afternoon > evening && afternoon > 35:
		return PatternDaytime
	case evening > night && evening > morning && evening > afternoon && evening > 35:
		return PatternEvening
	case night > morning && night > afternoon && night > evening && night > 30:
		return PatternNight
	}
	return PatternMixed
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
