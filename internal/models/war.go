package models

import "time"

type WarState string

const (
	StateNotInWar    WarState = "notInWar"
	StatePreparation WarState = "preparation"
	StateInWar       WarState = "inWar"
	StateWarEnded    WarState = "warEnded"
)

// apiTimeLayout is the timestamp format used by the war API.
const apiTimeLayout = "20060102T150405.000Z"

// Waiting reports whether the clan is between wars. Only the literal
// notInWar state waits; unknown states still carry war data.
func (s WarState) Waiting() bool {
	return s == StateNotInWar
}

func (s WarState) Known() bool {
	switch s {
	case StateNotInWar, StatePreparation, StateInWar, StateWarEnded:
		return true
	}
	return false
}

type BadgeUrls struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type Attack struct {
	AttackerTag           string  `json:"attackerTag"`
	DefenderTag           string  `json:"defenderTag"`
	Stars                 int     `json:"stars"`
	DestructionPercentage float64 `json:"destructionPercentage"`
	Order                 int     `json:"order"`
	Duration              int     `json:"duration"`
}

type Member struct {
	Tag                string   `json:"tag"`
	Name               string   `json:"name"`
	TownhallLevel      int      `json:"townhallLevel"`
	MapPosition        int      `json:"mapPosition"`
	Attacks            []Attack `json:"attacks,omitempty"`
	OpponentAttacks    int      `json:"opponentAttacks"`
	BestOpponentAttack *Attack  `json:"bestOpponentAttack,omitempty"`
}

// FirstAttack returns the member's first attack; later attacks are not
// counted anywhere in the board.
func (m *Member) FirstAttack() (Attack, bool) {
	if len(m.Attacks) == 0 {
		return Attack{}, false
	}
	return m.Attacks[0], true
}

type Clan struct {
	Tag                   string    `json:"tag"`
	Name                  string    `json:"name"`
	BadgeUrls             BadgeUrls `json:"badgeUrls"`
	ClanLevel             int       `json:"clanLevel"`
	Attacks               *int      `json:"attacks,omitempty"`
	Stars                 *int      `json:"stars,omitempty"`
	DestructionPercentage *float64  `json:"destructionPercentage,omitempty"`
	Members               []Member  `json:"members,omitempty"`
}

func (c *Clan) BadgeURL() string {
	return c.BadgeUrls.Large
}

// WarSnapshot is one poll's payload. It is never mutated after decoding;
// the next poll replaces it wholesale.
type WarSnapshot struct {
	State                WarState `json:"state"`
	TeamSize             *int     `json:"teamSize,omitempty"`
	AttacksPerMember     *int     `json:"attacksPerMember,omitempty"`
	PreparationStartTime string   `json:"preparationStartTime,omitempty"`
	StartTime            string   `json:"startTime,omitempty"`
	EndTime              string   `json:"endTime,omitempty"`
	Clan                 Clan     `json:"clan"`
	Opponent             Clan     `json:"opponent"`
}

func (w *WarSnapshot) StartsAt() (time.Time, bool) {
	return parseAPITime(w.StartTime)
}

func (w *WarSnapshot) EndsAt() (time.Time, bool) {
	return parseAPITime(w.EndTime)
}

// NextPhaseAt is when the current phase ends: battle day starts after
// preparation and the war ends after battle day.
func (w *WarSnapshot) NextPhaseAt() (time.Time, bool) {
	switch w.State {
	case StatePreparation:
		return w.StartsAt()
	case StateInWar:
		return w.EndsAt()
	}
	return time.Time{}, false
}

func parseAPITime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(apiTimeLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
