package models

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type CreateUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsNew    bool   `json:"isNew"`
}

// AttemptPayload mirrors the client's per-problem history entry. Only
// attempts whose answer parsed as an integer are ever sent.
type AttemptPayload struct {
	Operation     string `json:"operation" validate:"required,oneof=add sub mul div"`
	Operand1      int    `json:"num1"`
	Operand2      int    `json:"num2"`
	CorrectAnswer int    `json:"correctAnswer"`
	UserAnswer    int    `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// RecordGameRequest is the POST /api/games payload. Score, Correct and Wrong
// are pointers so that an absent field is distinguishable from a zero value:
// a scoreless game is valid, a missing score is not.
type RecordGameRequest struct {
	UserID        int64            `json:"userId" validate:"required"`
	Score         *int             `json:"score" validate:"required"`
	Correct       *int             `json:"correct" validate:"required"`
	Wrong         *int             `json:"wrong" validate:"required"`
	TotalProblems *int             `json:"totalProblems"`
	Operations    []string         `json:"operations" validate:"required,min=1,dive,oneof=add sub mul div"`
	Attempts      []AttemptPayload `json:"attempts" validate:"omitempty,dive"`
}

type RecordGameResponse struct {
	GameID  int64  `json:"gameId"`
	Message string `json:"message"`
}
