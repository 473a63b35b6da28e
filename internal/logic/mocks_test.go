package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Mocks

type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginFunc    func(ctx context.Context) (pgx.Tx, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

type MockRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

type MockRows struct {
	pgx.Rows
	NextFunc func() bool
	ScanFunc func(dest ...any) error
	ErrFunc  func() error
}

func (m *MockRows) Next() bool {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	return false
}

func (m *MockRows) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

func (m *MockRows) Close() {}

func (m *MockRows) Err() error {
	if m.ErrFunc != nil {
		return m.ErrFunc()
	}
	return nil
}

type MockTx struct {
	pgx.Tx
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	Committed  bool
	RolledBack bool
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockTx) Commit(ctx context.Context) error {
	m.Committed = true
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// scanInto copies values into Scan destinations positionally.
func scanInto(dest []any, values ...any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations, %d values", len(dest), len(values))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int:
			d2, ok := v.(int)
			if !ok {
				return fmt.Errorf("scan arg %d: want int, got %T", i, v)
			}
			*d = d2
		case *int64:
			switch v2 := v.(type) {
			case int64:
				*d = v2
			case int:
				*d = int64(v2)
			default:
				return fmt.Errorf("scan arg %d: want int64, got %T", i, v)
			}
		case *float64:
			switch v2 := v.(type) {
			case float64:
				*d = v2
			case int:
				*d = float64(v2)
			default:
				return fmt.Errorf("scan arg %d: want float64, got %T", i, v)
			}
		case *string:
			d2, ok := v.(string)
			if !ok {
				return fmt.Errorf("scan arg %d: want string, got %T", i, v)
			}
			*d = d2
		case *time.Time:
			d2, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("scan arg %d: want time.Time, got %T", i, v)
			}
			*d = d2
		case *bool:
			d2, ok := v.(bool)
			if !ok {
				return fmt.Errorf("scan arg %d: want bool, got %T", i, v)
			}
			*d = d2
		default:
			return fmt.Errorf("scan arg %d: unsupported destination %T", i, dest[i])
		}
	}
	return nil
}
