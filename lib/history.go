package lib

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Entry is one recorded evaluation. Exactly one of Result and ErrorKind is
// set.
type Entry struct {
	ID           uuid.UUID
	Expression   string
	Result       *float64
	ErrorKind    string
	ErrorMessage string
	EvaluatedAt  time.Time
}

// History keeps evaluation outcomes in Postgres.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// OpenHistory connects to dsn and brings the schema up to date.
func OpenHistory(ctx context.Context, dsn string) (*History, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	migrations, err := HistoryMigrations()
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := RunMigrations(ctx, db, migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return newHistory(db), nil
}

func newHistory(db *sql.DB) *History {
	return &History{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (h *History) Close() error {
	return h.db.Close()
}

// Record stores the outcome of evaluating expr: value when evalErr is nil,
// otherwise the error.
func (h *History) Record(ctx context.Context, expr string, value float64, evalErr error) (Entry, error) {
	entry := newEntry(expr, value, evalErr, h.now())

	var errKind, errMsg sql.NullString
	if entry.ErrorKind != "" {
		errKind = sql.NullString{String: entry.ErrorKind, Valid: true}
		errMsg = sql.NullString{String: entry.ErrorMessage, Valid: true}
	}
	var result sql.NullFloat64
	if entry.Result != nil {
		result = sql.NullFloat64{Float64: *entry.Result, Valid: true}
	}

	_, err := h.db.ExecContext(ctx,
		"INSERT INTO history (id, expression, result, error_kind, error_message, evaluated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.ID.String(), entry.Expression, result, errKind, errMsg, entry.EvaluatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record evaluation: %w", err)
	}

	return entry, nil
}

func newEntry(expr string, value float64, evalErr error, at time.Time) Entry {
	entry := Entry{
		ID:          uuid.New(),
		Expression:  expr,
		EvaluatedAt: at,
	}

	if evalErr == nil {
		entry.Result = &value
		return entry
	}

	entry.ErrorMessage = evalErr.Error()
	if kind, ok := KindOf(evalErr); ok {
		entry.ErrorKind = kind.String()
	} else {
		entry.ErrorKind = "Unknown"
	}
	return entry
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx,
		"SELECT id, expression, result, error_kind, error_message, evaluated_at FROM history ORDER BY evaluated_at DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			id      string
			entry   Entry
			result  sql.NullFloat64
			errKind sql.NullString
			errMsg  sql.NullString
		)
		if err := rows.Scan(&id, &entry.Expression, &result, &errKind, &errMsg, &entry.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		entry.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad history id %q: %w", id, err)
		}
		if result.Valid {
			v := result.Float64
			entry.Result = &v
		}
		entry.ErrorKind = errKind.String
		entry.ErrorMessage = errMsg.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
