package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gridshare-backend/internal/application/loadcurve"
)

// Format errors for the model reply. The reply is untrusted free text;
// nothing past ExtractMix ever sees it raw.
var (
	ErrNoJSONInReply = errors.New("no JSON object in model reply")
	ErrBadMixShape   = errors.New("model reply JSON does not match expected shape")
)

// Mix is the recommended investment split. The three values are intended
// to sum to 100 but that is not verified here; the gateway owns that
// contract.
type Mix struct {
	PV      float64 `json:"PV"`
	Wind    float64 `json:"Wind"`
	Battery float64 `json:"Battery"`
}

// Service asks the AI gateway for an investment mix matching a load curve.
type Service struct {
	Gateway Gateway
}

// RecommendMix builds a prompt from the aggregates (never the raw series)
// and extracts the mix from the model's free-text reply.
func (s *Service) RecommendMix(ctx context.Context, a loadcurve.Analysis) (Mix, error) {
	out, err := s.Gateway.Complete(ctx, BuildPrompt(a))
	if err != nil {
		return Mix{}, err
	}
	return ExtractMix(out)
}

// BuildPrompt embeds the aggregate statistics into the instruction sent to
// the model.
func BuildPrompt(a loadcurve.Analysis) string {
	return fmt.Sprintf(
		"A household's electricity load curve has these statistics: "+
			"total consumption %.2f kWh over %d samples, average daily consumption %.2f kWh, peak %.2f kW. "+
			"Time-of-day distribution: night %.1f%%, morning %.1f%%, afternoon %.1f%%, evening %.1f%% (pattern: %s). "+
			"Recommend an investment split across fractional energy assets. "+
			"Respond ONLY with a JSON object of the form {\"PV\": number, \"Wind\": number, \"Battery\": number} "+
			"where the three numbers sum to 100.",
		a.TotalKWh, a.SampleCount, a.AverageDailyKWh, a.PeakKW,
		a.NightSharePct, a.MorningSharePct, a.AfternoonSharePct, a.EveningSharePct, a.Pattern,
	)
}

// ExtractMix pulls the first balanced-brace JSON substring out of the
// reply and decodes it. Anything around the object (explanatory prose,
// markdown fences) is ignored.
func ExtractMix(text string) (Mix, error) {
	sub, ok := firstJSONObject(text)
	if !ok {
		return Mix{}, ErrNoJSONInReply
	}
	var mix Mix
	if err := json.Unmarshal([]byte(sub), &mix); err != nil {
		return Mix{}, ErrBadMixShape
	}
	if mix.PV < 0 || mix.Wind < 0 || mix.Battery < 0 {
		return Mix{}, ErrBadMixShape
	}
	return mix, nil
}

// firstJSONObject scans for the first '{' and returns the substring up to
// its matching '}', tracking string literals so braces inside values do
// not unbalance the count.
func firstJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range text {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}
