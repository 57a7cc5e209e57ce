package services

import (
	"errors"
	"fmt"
	"strconv"
	"warboard/internal/models"
)

var ErrMissingAttacksPerMember = errors.New("war data has no attacksPerMember")

// ParseWarData builds the compact scoreboard payload published to the
// companion window.
func ParseWarData(snapshot *models.WarSnapshot) (models.ScoreboardData, error) {
	if snapshot == nil {
		return models.ScoreboardData{}, errors.New("nil war snapshot")
	}
	if snapshot.AttacksPerMember == nil {
		return models.ScoreboardData{}, ErrMissingAttacksPerMember
	}
	perMember := *snapshot.AttacksPerMember

	return models.ScoreboardData{
		Clan:     sideData(&snapshot.Clan, perMember),
		Opponent: sideData(&snapshot.Opponent, perMember),
	}, nil
}

func sideData(clan *models.Clan, attacksPerMember int) models.SideData {
	stars, used := 0, 0
	if clan.Stars != nil {
		stars = *clan.Stars
	}
	if clan.Attacks != nil {
		used = *clan.Attacks
	}
	pct := 0.0
	if clan.DestructionPercentage != nil {
		pct = *clan.DestructionPercentage
	}

	return models.SideData{
		Badge:      clan.BadgeURL(),
		Stars:      strconv.Itoa(stars),
		Percentage: FormatScorePercentage(pct),
		Duration:   FormatClock(averageDuration(clan.Members)),
		Attacks:    fmt.Sprintf("%d/%d", used, attacksPerMember*len(clan.Members)),
	}
}

// averageDuration counts every attack, not just the first, and truncates.
func averageDuration(members []models.Member) int {
	total, count := 0, 0
	for i := range members {
		for _, attack := range members[i].Attacks {
			total += attack.Duration
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// FormatScorePercentage prints a full clear as "100" and anything else with
// one decimal.
func FormatScorePercentage(value float64) string {
	if value == 100 {
		return "100"
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
