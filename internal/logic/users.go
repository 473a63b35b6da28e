package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mathblitz/stats-api/internal/models"
)

type userService struct {
	pg PgPool
}

func NewUserService(pg PgPool) UserService {
	return &userService{pg: pg}
}

// LoginOrCreate returns the existing user for the trimmed username or creates
// one. The insert uses ON CONFLICT DO NOTHING plus a reselect so two
// concurrent first logins for the same name converge on one row.
func (s *userService) LoginOrCreate(ctx context.Context, username string) (models.User, bool, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return models.User{}, false, fmt.Errorf("%w: username is required", ErrValidation)
	}

	var u models.User
	err := s.pg.QueryRow(ctx,
		`SELECT id, username, created_at FROM users WHERE username = $1`,
		name).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err == nil {
		return u, false, nil
	}
	if err != pgx.ErrNoRows {
		return models.User{}, false, fmt.Errorf("lookup user: %w", err)
	}

	err = s.pg.QueryRow(ctx, `
		INSERT INTO users (username) VALUES ($1)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, username, created_at
	`, name).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err == nil {
		return u, true, nil
	}
	if err != pgx.ErrNoRows {
		return models.User{}, false, fmt.Errorf("create user: %w", err)
	}

	// Lost the race: another request inserted the row between our two queries.
	err = s.pg.QueryRow(ctx,
		`SELECT id, username, created_at FROM users WHERE username = $1`,
		name).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		return models.User{}, false, fmt.Errorf("reselect user: %w", err)
	}
	return u, false, nil
}
