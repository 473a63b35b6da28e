package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mathblitz/stats-api/internal/models"
)

type statsService struct {
	pg PgPool
}

func NewStatsService(pg PgPool) StatsService {
	return &statsService{pg: pg}
}

// GetUserStats fetches totals, recent games and the per-operation breakdown
// for one user. The three queries are independent and run concurrently. A
// user with no sessions gets the explicit zero shape, never an error.
func (s *statsService) GetUserStats(ctx context.Context, userID int64) (*models.UserStatsView, error) {
	view := &models.UserStatsView{
		RecentGames:    []models.GameSession{},
		OperationStats: []models.OperationStats{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.fillTotals(ctx, userID, &view.Stats); err != nil {
			return fmt.Errorf("user totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		games, err := s.recentGames(ctx, userID, 10)
		if err != nil {
			return fmt.Errorf("recent games: %w", err)
		}
		view.RecentGames = games
		return nil
	})

	g.Go(func() error {
		ops, err := s.operationStats(ctx, userID)
		if err != nil {
			return fmt.Errorf("operation stats: %w", err)
		}
		view.OperationStats = ops
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return view, nil
}

func (s *statsService) fillTotals(ctx context.Context, userID int64, out *models.UserStats) error {
	var first, last *time.Time
	err := s.pg.QueryRow(ctx, `
		SELECT
			COUNT(g.id),
			COALESCE(MAX(g.score), 0),
			COALESCE(AVG(g.score), 0),
			COALESCE(SUM(g.correct), 0),
			COALESCE(SUM(g.wrong), 0),
			COALESCE(SUM(g.total_problems), 0),
			MIN(g.played_at),
			MAX(g.played_at)
		FROM games g
		WHERE g.user_id = $1
	`, userID).Scan(&out.TotalGames, &out.BestScore, &out.AvgScore,
		&out.TotalCorrect, &out.TotalWrong, &out.TotalProblems, &first, &last)
	if err != nil {
		return err
	}

	out.FirstGame = first
	out.LastGame = last
	out.Accuracy = AccuracyPercent(out.TotalCorrect, out.TotalProblems)
	return nil
}

func (s *statsService) recentGames(ctx context.Context, userID int64, limit int) ([]models.GameSession, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, user_id, score, correct, wrong, total_problems, operations, played_at
		FROM games
		WHERE user_id = $1
		ORDER BY played_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []models.GameSession{}
	for rows.Next() {
		var g models.GameSession
		var opsJSON string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Score, &g.Correct, &g.Wrong,
			&g.TotalProblems, &opsJSON, &g.PlayedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(opsJSON), &g.Operations); err != nil {
			g.Operations = nil
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *statsService) operationStats(ctx context.Context, userID int64) ([]models.OperationStats, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT
			pa.operation,
			COUNT(*),
			SUM(CASE WHEN pa.is_correct THEN 1 ELSE 0 END)
		FROM problem_attempts pa
		JOIN games g ON pa.game_id = g.id
		WHERE g.user_id = $1
		GROUP BY pa.operation
		ORDER BY pa.operation
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.OperationStats{}
	for rows.Next() {
		var st models.OperationStats
		if err := rows.Scan(&st.Operation, &st.Total, &st.Correct); err != nil {
			return nil, err
		}
		st.Wrong = st.Total - st.Correct
		st.Label = st.Operation.Label()
		st.Accuracy = AccuracyPercent(st.Correct, st.Total)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// AccuracyPercent is round(100 * correct / total), defined as 0 when total
// is 0 so empty histories never divide by zero.
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
