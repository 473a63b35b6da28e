package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/mathblitz/stats-api/internal/models"
)

// DefaultLeaderboardLimit matches the reference client's request size.
const DefaultLeaderboardLimit = 10

// MaxLeaderboardLimit caps a caller-supplied limit.
const MaxLeaderboardLimit = 100

// LeaderboardCacheKey is the Redis key for a cached ranked view. The warmer
// writes it and the read path looks it up, so both sides share the format.
func LeaderboardCacheKey(tf Timeframe, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", tf, limit)
}

type leaderboardService struct {
	pg PgPool
}

func NewLeaderboardService(pg PgPool) LeaderboardService {
	return &leaderboardService{pg: pg}
}

// GetLeaderboard returns at most limit ranked rows for the window. Filtering
// happens before aggregation, so only users with at least one qualifying
// session appear. Ordering is best score, then average score, then user id:
// the id is the tertiary key that makes ties stable across repeated calls.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, tf Timeframe, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	where := "TRUE"
	// predicate values come from the fixed Timeframe set, never the caller
	if p := tf.predicate(); p != "" {
		where = p
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.username,
			MAX(g.score) AS best_score,
			AVG(g.score) AS avg_score,
			SUM(g.correct) AS total_correct,
			SUM(g.wrong) AS total_wrong,
			COUNT(g.id) AS games_played,
			MAX(g.played_at) AS last_played
		FROM users u
		JOIN games g ON g.user_id = u.id
		WHERE %s
		GROUP BY u.id, u.username
		ORDER BY best_score DESC, avg_score DESC, u.id ASC
		LIMIT $1
	`, where)

	rows, err := s.pg.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0, limit)
	rank := 1
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.BestScore, &e.AvgScore,
			&e.TotalCorrect, &e.TotalWrong, &e.GamesPlayed, &e.LastPlayed); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.Rank = rank
		entries = append(entries, e)
		rank++
	}
	return entries, rows.Err()
}

// GetUserRank returns the 1-based position of the user's best single-session
// score among all recorded sessions ever. Rank is never time-windowed, even
// though the leaderboard is. A user with no sessions ranks with best score 0.
func (s *leaderboardService) GetUserRank(ctx context.Context, userID int64) (int, error) {
	var best int
	err := s.pg.QueryRow(ctx,
		`SELECT COALESCE(MAX(score), 0) FROM games WHERE user_id = $1`,
		userID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("query user best score: %w", err)
	}

	var better int
	err = s.pg.QueryRow(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM games WHERE score > $1`,
		best).Scan(&better)
	if err != nil {
		return 0, fmt.Errorf("count better scores: %w", err)
	}

	return better + 1, nil
}

// GetTrends returns per-day games played, average score and max score over
// the trailing days window, oldest day first. userID 0 means all users.
func (s *leaderboardService) GetTrends(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	query := `
		SELECT
			g.played_at::date AS day,
			COUNT(*) AS games_played,
			AVG(g.score) AS avg_score,
			MAX(g.score) AS max_score
		FROM games g
		WHERE g.played_at >= now() - make_interval(days => $1)
	`
	args := []any{days}
	if userID > 0 {
		query += " AND g.user_id = $2"
		args = append(args, userID)
	}
	query += " GROUP BY day ORDER BY day ASC"

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	points := []models.TrendPoint{}
	for rows.Next() {
		var p models.TrendPoint
		var day time.Time
		if err := rows.Scan(&day, &p.GamesPlayed, &p.AvgScore, &p.MaxScore); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		p.Date = day.Format("2006-01-02")
		points = append(points, p)
	}
	return points, rows.Err()
}
