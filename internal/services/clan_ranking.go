package services

import (
	"cmp"
	"slices"
	"strings"
	"warboard/internal/models"

	"github.com/agnivade/levenshtein"
)

// RankClans orders search hits for query: exact name matches first, then by
// case-insensitive edit distance to the query, then by clan level descending.
// Ties keep the API's order. The input is not modified.
func RankClans(query string, clans []models.ClanSummary) []models.ClanSummary {
	query = strings.TrimSpace(query)
	q := strings.ToLower(query)

	type ranked struct {
		clan     models.ClanSummary
		exact    bool
		distance int
	}
	items := make([]ranked, len(clans))
	for i, c := range clans {
		items[i] = ranked{
			clan:     c,
			exact:    c.Name == query,
			distance: levenshtein.ComputeDistance(q, strings.ToLower(c.Name)),
		}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		if a.exact != b.exact {
			if a.exact {
				return -1
			}
			return 1
		}
		if d := cmp.Compare(a.distance, b.distance); d != 0 {
			return d
		}
		return cmp.Compare(b.clan.ClanLevel, a.clan.ClanLevel)
	})

	out := make([]models.ClanSummary, len(items))
	for i := range items {
		out[i] = items[i].clan
	}
	return out
}
