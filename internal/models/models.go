package models

import "time"

// Operation identifies one of the four arithmetic problem kinds.
type Operation string

const (
	OpAdd Operation = "add"
	OpSub Operation = "sub"
	OpMul Operation = "mul"
	OpDiv Operation = "div"
)

// AllOperations in canonical order.
var AllOperations = []Operation{OpAdd, OpSub, OpMul, OpDiv}

// Valid reports whether the tag is one of the four known operations.
func (o Operation) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Label returns the human-readable name used in stats views.
func (o Operation) Label() string {
	switch o {
	case OpAdd:
		return "Addition"
	case OpSub:
		return "Subtraction"
	case OpMul:
		return "Multiplication"
	case OpDiv:
		return "Division"
	}
	return string(o)
}

// ParseOperations converts raw tags to Operations, rejecting unknown kinds
// and duplicates. An empty input yields an empty slice, not an error; the
// recorder enforces the non-empty rule.
func ParseOperations(raw []string) ([]Operation, bool) {
	ops := make([]Operation, 0, len(raw))
	seen := make(map[Operation]bool, len(raw))
	for _, r := range raw {
		op := Operation(r)
		if !op.Valid() || seen[op] {
			return nil, false
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, true
}

// User is a registered player. Usernames are trimmed, case-sensitive and
// unique; a user is created on first login and never deleted.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// GameSession is one completed play-through. Immutable once persisted.
// Invariants: Score, Correct, Wrong >= 0; TotalProblems == Correct + Wrong;
// Operations is a non-empty subset of the four kinds.
type GameSession struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	Score         int         `json:"score"`
	Correct       int         `json:"correct"`
	Wrong         int         `json:"wrong"`
	TotalProblems int         `json:"total_problems"`
	Operations    []Operation `json:"operations"`
	PlayedAt      time.Time   `json:"played_at"`
}

// ProblemAttempt is one answered problem within a session. Attempts whose
// submitted answer failed to parse never reach persistence; see the problem
// package. Immutable once persisted.
type ProblemAttempt struct {
	ID            int64     `json:"id"`
	GameID        int64     `json:"game_id"`
	Operation     Operation `json:"operation"`
	Operand1      int       `json:"num1"`
	Operand2      int       `json:"num2"`
	CorrectAnswer int       `json:"correct_answer"`
	UserAnswer    int       `json:"user_answer"`
	IsCorrect     bool      `json:"is_correct"`
}
