package models

const (
	EventScoreboardUpdate = "scoreboardUpdate"
	EventLogoUpdate       = "logoUpdate"
	EventViewUpdate       = "viewUpdate"
	EventWindowOpen       = "windowOpen"
	EventWindowResize     = "windowResize"
	EventWindowClose      = "windowClose"
)

type Event struct {
	Name    string `json:"event"`
	Tag     string `json:"tag,omitempty"`
	Payload any    `json:"payload"`
}

type ScoreboardUpdate struct {
	RepData ScoreboardData `json:"rep_data"`
}

type WindowClose struct {
	Name string `json:"name"`
}
