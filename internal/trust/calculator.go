package trust

import "math"

// Factor weights. They must sum to 1.0.
const (
	WeightDocumentVerification = 0.35
	WeightResponseTime         = 0.25
	WeightCompletionRate       = 0.20
	WeightLongevity            = 0.15
	WeightAntifraud            = 0.05
)

const (
	// longevityCapYears is the point after which more experience earns no extra credit
	longevityCapYears = 5.0
	// incidentPenalty is the antifraud points lost per recorded incident
	incidentPenalty = 20.0

	MinScore = 0
	MaxScore = 100
)

// ComputeTrustScore maps a provider's raw factors to an integer score in [0,100].
// Out-of-range inputs are clamped before weighting, never rejected.
func ComputeTrustScore(f TrustFactors) int {
	return Breakdown(f).Score
}

// Breakdown returns the weighted contribution of every factor along with the
// final rounded score and its tier.
func Breakdown(f TrustFactors) ScoreBreakdown {
	doc := ClampPercent(f.DocumentVerification)
	response := ClampPercent(f.ResponseTime)
	completion := ClampPercent(f.CompletionRate)

	b := ScoreBreakdown{
		DocumentVerification: doc * WeightDocumentVerification,
		ResponseTime:         response * WeightResponseTime,
		CompletionRate:       completion * WeightCompletionRate,
		Longevity:            longevityScore(f.YearsActive) * WeightLongevity,
		Antifraud:            antifraudBonus(f.FraudIncidents) * WeightAntifraud,
	}

	total := b.DocumentVerification + b.ResponseTime + b.CompletionRate + b.Longevity + b.Antifraud
	b.Score = ClampScore(int(math.Round(total)))
	b.Tier = TierFor(b.Score)
	return b
}

// TierFor buckets a trust score
func TierFor(score int) Tier {
	switch score = ClampScore(score); {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierGood
	case score >= 60:
		return TierFair
	default:
		return TierLow
	}
}

func longevityScore(yearsActive float64) float64 {
	if yearsActive <= 0 || math.IsNaN(yearsActive) {
		return 0
	}
	return math.Min(yearsActive/longevityCapYears*100, 100)
}

func antifraudBonus(incidents int) float64 {
	if incidents <= 0 {
		return 100
	}
	return math.Max(0, 100-float64(incidents)*incidentPenalty)
}

// ClampPercent bounds a percentage to [0,100]. NaN is treated as 0.
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampScore bounds an integer score to [MinScore,MaxScore]
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
