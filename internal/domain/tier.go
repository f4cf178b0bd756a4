package domain

// Tier is the severity band derived from a sentiment score.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// ClassifyScore maps a score to a tier. Low is the default; the medium and
// high overrides are applied in that order, so 5 stays low and 8 is high.
func ClassifyScore(score int) Tier {
	tier := TierLow
	if score > 5 && score < 8 {
		tier = TierMedium
	}
	if score >= 8 {
		tier = TierHigh
	}
	return tier
}

// Color returns the indicator color name.
func (t Tier) Color() string {
	switch t {
	case TierMedium:
		return "yellow"
	case TierHigh:
		return "green"
	default:
		return "red"
	}
}

// Indicator returns the emoji shown in reports.
func (t Tier) Indicator() string {
	switch t {
	case TierMedium:
		return "🟡"
	case TierHigh:
		return "🟢"
	default:
		return "🔴"
	}
}
