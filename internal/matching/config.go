package matching

// UrgencyWeights scale the trust score and the preference bonus for one urgency level
type UrgencyWeights struct {
	Trust      float64
	Preference float64
}

// Config holds the ranking weights
type Config struct {
	// PositiveBonus is added when the provider is on the beneficiary's positive list
	PositiveBonus float64
	// AttributeBonus is added for a matched preferred type, a matched preferred
	// size and each preferred specialization the provider covers
	AttributeBonus float64
	// Urgency maps each urgency level to its weights. Unknown levels use Fallback.
	Urgency  map[UrgencyLevel]UrgencyWeights
	Fallback UrgencyLevel
}

// DefaultConfig returns the production ranking weights. Higher urgency shifts
// weight from the preference bonus to the trust score.
func DefaultConfig() *Config {
	return &Config{
		PositiveBonus:  15,
		AttributeBonus: 5,
		Urgency: map[UrgencyLevel]UrgencyWeights{
			UrgencyLow:      {Trust: 1.00, Preference: 1.00},
			UrgencyMedium:   {Trust: 1.10, Preference: 0.90},
			UrgencyHigh:     {Trust: 1.25, Preference: 0.75},
			UrgencyCritical: {Trust: 1.50, Preference: 0.50},
		},
		Fallback: UrgencyMedium,
	}
}

func (c *Config) weightsFor(level UrgencyLevel) UrgencyWeights {
	if w, ok := c.Urgency[level]; ok {
		return w
	}
	if w, ok := c.Urgency[c.Fallback]; ok {
		return w
	}
	return UrgencyWeights{Trust: 1, Preference: 1}
}
