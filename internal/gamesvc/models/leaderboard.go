package models

// LeaderboardEntry is one ranked row of a game's leaderboard.
// Score = 100 per confirmed elimination + survival hours + 500 winner bonus.
type LeaderboardEntry struct {
	ParticipantID string  `json:"participant_id"`
	Nickname      string  `json:"nickname"`
	Group         string  `json:"group,omitempty"`
	Photo         *string `json:"photo,omitempty"`
	Status        string  `json:"status"`
	Eliminations  int     `json:"eliminations"`
	SurvivalHours int     `json:"survival_hours"`
	Score         int     `json:"score"`
	Position      int     `json:"position"`
}
