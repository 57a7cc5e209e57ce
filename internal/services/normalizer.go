package services

import (
	"fmt"
	"math"
	"warboard/internal/models"
)

var stateLabels = map[models.WarState]string{
	models.StatePreparation: "준비중",
	models.StateInWar:       "전쟁중",
	models.StateWarEnded:    "전쟁종료. 다음전쟁까지 대기",
	models.StateNotInWar:    "전쟁중이 아님. 대기중..",
}

// WaitingMessage replaces the aggregates while the clan is not in a war.
const WaitingMessage = "전쟁중이 아님. 대기중.. 클랜전 시작시 자동으로 바뀜"

// StateLabel falls back to the notInWar label for unknown states.
func StateLabel(state models.WarState) string {
	if label, ok := stateLabels[state]; ok {
		return label
	}
	return stateLabels[models.StateNotInWar]
}

// FormatDuration renders seconds as "{m}m{s}s" without rolling minutes
// into hours. Negative values are formatted as the magnitude with a single
// leading sign, so -80 is "-1m20s" rather than the floored "-2m-20s".
func FormatDuration(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%dm%ds", sign, seconds/60, seconds%60)
}

// Normalize sums the first attack of every member that attacked on each
// side. It returns false when the clan is not in a war.
func Normalize(snapshot *models.WarSnapshot) (*models.AggregateResult, bool) {
	if snapshot == nil || snapshot.State.Waiting() {
		return nil, false
	}

	clanPct, clanDur := sideTotals(snapshot.Clan.Members)
	oppPct, oppDur := sideTotals(snapshot.Opponent.Members)

	return &models.AggregateResult{
		ClanTotalPercentage:     clanPct,
		OpponentTotalPercentage: oppPct,
		ClanTotalDuration:       clanDur,
		OpponentTotalDuration:   oppDur,
		PercentageDifference:    math.Abs(clanPct - oppPct),
		DurationDifference:      clanDur - oppDur,
	}, true
}

func sideTotals(members []models.Member) (percentage float64, duration int) {
	for i := range members {
		attack, ok := members[i].FirstAttack()
		if !ok {
			continue
		}
		percentage += attack.DestructionPercentage
		duration += attack.Duration
	}
	return percentage, duration
}
