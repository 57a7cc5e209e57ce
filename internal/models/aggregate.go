package models

// AggregateResult is derived from a single snapshot and recomputed every tick.
type AggregateResult struct {
	ClanTotalPercentage     float64 `json:"clanTotalPercentage"`
	OpponentTotalPercentage float64 `json:"opponentTotalPercentage"`
	ClanTotalDuration       int     `json:"clanTotalDuration"`
	OpponentTotalDuration   int     `json:"opponentTotalDuration"`
	PercentageDifference    float64 `json:"percentageDifference"`
	DurationDifference      int     `json:"durationDifference"`
}
