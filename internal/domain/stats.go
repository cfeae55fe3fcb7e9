package domain

// Stats summarizes one user's reading activity as of a reference instant.
type Stats struct {
	TotalBooks     int `json:"totalBooks"`
	TotalCards     int `json:"totalCards"`
	Streak         int `json:"streak"`
	CardsThisWeek  int `json:"cardsThisWeek"`
	CardsThisMonth int `json:"cardsThisMonth"`
	CardsThisYear  int `json:"cardsThisYear"`
}
