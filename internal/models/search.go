package models

// ClanSummary is one hit of the clan search endpoint.
type ClanSummary struct {
	Tag       string    `json:"tag"`
	Name      string    `json:"name"`
	ClanLevel int       `json:"clanLevel"`
	Members   int       `json:"members"`
	BadgeUrls BadgeUrls `json:"badgeUrls"`
}

type ClanSearchResponse struct {
	Items []ClanSummary `json:"items"`
}
