package models

// SideData is one side of the compact scoreboard, preformatted for display.
type SideData struct {
	Badge      string `json:"badge"`
	Stars      string `json:"stars"`
	Percentage string `json:"percentage"`
	Duration   string `json:"duration"`
	Attacks    string `json:"attacks"`
}

type ScoreboardData struct {
	Clan     SideData `json:"clan"`
	Opponent SideData `json:"opponent"`
}

type LogoUpdate struct {
	UseDefaultClanLogo     bool    `json:"useDefaultClanLogo"`
	UseDefaultOpponentLogo bool    `json:"useDefaultOpponentLogo"`
	ClanLogo               *string `json:"clanLogo"`
	OpponentLogo           *string `json:"opponentLogo"`
}

// WindowSpec is what the host needs to open a window.
type WindowSpec struct {
	URL         string  `json:"url"`
	Name        string  `json:"name"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Transparent bool    `json:"transparent"`
	Decorated   bool    `json:"decorations"`
}

type WindowSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
