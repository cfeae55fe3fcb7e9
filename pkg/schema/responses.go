package schema

// StatsResponse summarizes a user's reading activity.
type StatsResponse struct {
	TotalBooks     int `json:"totalBooks"`
	TotalCards     int `json:"totalCards"`
	Streak         int `json:"streak"`
	CardsThisWeek  int `json:"cardsThisWeek"`
	CardsThisMonth int `json:"cardsThisMonth"`
	CardsThisYear  int `json:"cardsThisYear"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
