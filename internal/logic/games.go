package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mathblitz/stats-api/internal/models"
)

var (
	gamesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathblitz_games_recorded_total",
		Help: "Total number of game sessions persisted",
	})

	attemptsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathblitz_attempts_recorded_total",
		Help: "Total number of problem attempts persisted",
	})
)

type gameService struct {
	pg PgPool
}

func NewGameService(pg PgPool) GameService {
	return &gameService{pg: pg}
}

// RecordGame validates and persists one completed session together with its
// attempt rows in a single transaction: the session is either fully visible
// with a consistent score/correct/wrong triple or not visible at all.
// Validation runs entirely before the transaction opens, so a rejected
// request never leaves partial state.
func (s *gameService) RecordGame(ctx context.Context, req models.RecordGameRequest) (int64, error) {
	if req.UserID <= 0 {
		return 0, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if req.Score == nil || req.Correct == nil || req.Wrong == nil {
		return 0, fmt.Errorf("%w: score, correct and wrong are required", ErrValidation)
	}
	score, correct, wrong := *req.Score, *req.Correct, *req.Wrong
	if score < 0 || correct < 0 || wrong < 0 {
		return 0, fmt.Errorf("%w: score, correct and wrong must be non-negative", ErrValidation)
	}
	if correct+wrong == 0 {
		return 0, fmt.Errorf("%w: a session with zero attempts cannot be recorded", ErrValidation)
	}

	total := correct + wrong
	if req.TotalProblems != nil {
		if *req.TotalProblems != total {
			return 0, fmt.Errorf("%w: totalProblems must equal correct+wrong", ErrValidation)
		}
		total = *req.TotalProblems
	}

	ops, ok := models.ParseOperations(req.Operations)
	if !ok || len(ops) == 0 {
		return 0, fmt.Errorf("%w: operations must be a non-empty set of add/sub/mul/div", ErrValidation)
	}
	for _, a := range req.Attempts {
		if !models.Operation(a.Operation).Valid() {
			return 0, fmt.Errorf("%w: attempt has unknown operation %q", ErrValidation, a.Operation)
		}
	}

	opsJSON, err := json.Marshal(ops)
	if err != nil {
		return 0, fmt.Errorf("encode operations: %w", err)
	}

	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var gameID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO games (user_id, score, correct, wrong, total_problems, operations)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.UserID, score, correct, wrong, total, string(opsJSON)).Scan(&gameID)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}

	if len(req.Attempts) > 0 {
		if err := insertAttempts(ctx, tx, gameID, req.Attempts); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit game: %w", err)
	}

	gamesRecorded.Inc()
	attemptsRecorded.Add(float64(len(req.Attempts)))
	return gameID, nil
}

// insertAttempts bulk-inserts the attempt rows for a game in one statement.
func insertAttempts(ctx context.Context, tx pgx.Tx, gameID int64, attempts []models.AttemptPayload) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO problem_attempts (game_id, operation, num1, num2, correct_answer, user_answer, is_correct) VALUES ")
	vals := make([]any, 0, len(attempts)*7)
	for i, a := range attempts {
		n := i * 7
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)
		vals = append(vals, gameID, a.Operation, a.Operand1, a.Operand2, a.CorrectAnswer, a.UserAnswer, a.IsCorrect)
	}

	if _, err := tx.Exec(ctx, sb.String(), vals...); err != nil {
		return fmt.Errorf("insert attempts: %w", err)
	}
	return nil
}
