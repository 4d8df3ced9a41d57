package match

// Badge tiers surfaced to the UI for the score pill.
const (
	BadgeHigh   = "high"
	BadgeMedium = "medium"
	BadgeFair   = "fair"
	BadgeLow    = "low"
)

func Badge(score int) string {
	switch {
	case score >= 80:
		return BadgeHigh
	case score >= 60:
		return BadgeMedium
	case score >= 40:
		return BadgeFair
	default:
		return BadgeLow
	}
}
