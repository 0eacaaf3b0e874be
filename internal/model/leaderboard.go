package model

// LeaderboardEntry is one ranked row of a lobby's leaderboard
type LeaderboardEntry struct {
	UserID         UserID
	Name           string
	QuestionCount  int
	YesCount       int
	GuessedCorrect bool
}
