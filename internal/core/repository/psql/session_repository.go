package psql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	database "github.com/openblog/web-service/internal/core"
	"github.com/openblog/web-service/internal/core/domain"
)

// SessionRepository implements domain.SessionRepository using PostgreSQL.
// The SessionUser projection is stored as JSONB in the data column, so a
// session survives process restarts and the projection travels with the row.
type SessionRepository struct{}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// FindByID retrieves a session by id. Expired or missing sessions return nil, nil.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	var (
		s    domain.Session
		data []byte
	)
	query := `SELECT id, data, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()`
	err := db.QueryRow(ctx, query, id).Scan(&s.ID, &data, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	if err := json.Unmarshal(data, &s.User); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &s, nil
}

// Create inserts a new session row
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	db := database.GetPool()
	if db == nil {
		return errors.New("database connection not available")
	}

	data, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, data, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.User.UserID, data, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Save writes the session's user projection back to the store
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	db := database.GetPool()
	if db == nil {
		return errors.New("database connection not available")
	}

	data, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	_, err = db.Exec(ctx,
		`UPDATE sessions SET data = $2 WHERE id = $1`,
		session.ID, data,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteByID removes a session row
func (r *SessionRepository) DeleteByID(ctx context.Context, id string) error {
	db := database.GetPool()
	if db == nil {
		return errors.New("database connection not available")
	}

	_, err := db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ domain.SessionRepository = (*SessionRepository)(nil)
