package problem

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mathblitz/stats-api/internal/models"
)

// PointsPerCorrect is the scoring rule: a flat +10 per correct answer.
const PointsPerCorrect = 10

var (
	// ErrNoProblem means Submit was called before Next.
	ErrNoProblem = errors.New("no problem outstanding")
	// ErrNotANumber means the submitted answer did not parse as an integer.
	// Such submissions are rejected for scoring and never enter the history.
	ErrNotANumber = errors.New("answer is not a number")
)

// Session tracks one play-through: the running score, correctness counters
// and the attempt history that becomes the persisted ProblemAttempt rows.
type Session struct {
	gen     *Generator
	ops     []models.Operation
	current *Problem

	score   int
	correct int
	wrong   int
	history []models.AttemptPayload
}

// NewSession starts a session over the given operation set.
func NewSession(ops []models.Operation, src rand.Source) (*Session, error) {
	gen, err := NewGenerator(ops, src)
	if err != nil {
		return nil, err
	}
	return &Session{gen: gen, ops: append([]models.Operation(nil), ops...)}, nil
}

// Next generates and returns the next problem, replacing any outstanding one.
func (s *Session) Next() Problem {
	p := s.gen.Next()
	s.current = &p
	return p
}

// Submit scores the raw answer against the outstanding problem. A value that
// fails to parse as an integer leaves all counters and the history untouched
// and keeps the problem outstanding so the player can retry.
func (s *Session) Submit(raw string) (correct bool, err error) {
	if s.current == nil {
		return false, ErrNoProblem
	}
	answer, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false, ErrNotANumber
	}

	p := *s.current
	s.current = nil
	correct = answer == p.CorrectAnswer
	if correct {
		s.score += PointsPerCorrect
		s.correct++
	} else {
		s.wrong++
	}
	s.history = append(s.history, models.AttemptPayload{
		Operation:     string(p.Operation),
		Operand1:      p.Operand1,
		Operand2:      p.Operand2,
		CorrectAnswer: p.CorrectAnswer,
		UserAnswer:    answer,
		IsCorrect:     correct,
	})
	return correct, nil
}

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Attempts returns how many parseable answers have been submitted.
func (s *Session) Attempts() int { return s.correct + s.wrong }

// Result snapshots the session as a game-recording request for the user.
func (s *Session) Result(userID int64) models.RecordGameRequest {
	score, correct, wrong := s.score, s.correct, s.wrong
	total := correct + wrong
	ops := make([]string, len(s.ops))
	for i, op := range s.ops {
		ops[i] = string(op)
	}
	return models.RecordGameRequest{
		UserID:        userID,
		Score:         &score,
		Correct:       &correct,
		Wrong:         &wrong,
		TotalProblems: &total,
		Operations:    ops,
		Attempts:      append([]models.AttemptPayload(nil), s.history...),
	}
}
