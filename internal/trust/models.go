package trust

// TrustFactors are the raw performance signals a provider's trust score is
// derived from. Percentages are expected in [0,100]; the calculator clamps
// anything outside that range.
type TrustFactors struct {
	DocumentVerification float64 `json:"document_verification"`
	ResponseTime         float64 `json:"response_time"`
	CompletionRate       float64 `json:"completion_rate"`
	YearsActive          float64 `json:"years_active"`
	FraudIncidents       int     `json:"fraud_incidents"`
}

// Tier is a coarse label for a trust score
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierLow       Tier = "low"
)

// ScoreBreakdown shows how each factor contributed to a score
type ScoreBreakdown struct {
	DocumentVerification float64 `json:"document_verification"`
	ResponseTime         float64 `json:"response_time"`
	CompletionRate       float64 `json:"completion_rate"`
	Longevity            float64 `json:"longevity"`
	Antifraud            float64 `json:"antifraud"`
	Score                int     `json:"score"`
	Tier                 Tier    `json:"tier"`
}
