package models

import "time"

// LeaderboardEntry is one ranked row of a time-windowed leaderboard.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	BestScore    int       `json:"best_score"`
	AvgScore     float64   `json:"avg_score"`
	TotalCorrect int       `json:"total_correct"`
	TotalWrong   int       `json:"total_wrong"`
	GamesPlayed  int       `json:"games_played"`
	LastPlayed   time.Time `json:"last_played"`
}

// UserStats aggregates every session a user has recorded.
type UserStats struct {
	TotalGames    int        `json:"total_games"`
	BestScore     int        `json:"best_score"`
	AvgScore      float64    `json:"avg_score"`
	TotalCorrect  int        `json:"total_correct"`
	TotalWrong    int        `json:"total_wrong"`
	TotalProblems int        `json:"total_problems"`
	Accuracy      int        `json:"accuracy"`
	FirstGame     *time.Time `json:"first_game,omitempty"`
	LastGame      *time.Time `json:"last_game,omitempty"`
}

// OperationStats is a per-operation correctness breakdown.
type OperationStats struct {
	Operation Operation `json:"operation"`
	Label     string    `json:"label"`
	Correct   int       `json:"correct"`
	Wrong     int       `json:"wrong"`
	Total     int       `json:"total"`
	Accuracy  int       `json:"accuracy"`
}

// UserStatsView is the GET /api/users/{id}/stats response body.
type UserStatsView struct {
	Stats          UserStats        `json:"stats"`
	RecentGames    []GameSession    `json:"recentGames"`
	OperationStats []OperationStats `json:"operationStats"`
}

// TrendPoint is one day of aggregate activity.
type TrendPoint struct {
	Date        string  `json:"date"`
	GamesPlayed int     `json:"games_played"`
	AvgScore    float64 `json:"avg_score"`
	MaxScore    int     `json:"max_score"`
}
