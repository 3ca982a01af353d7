package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	database "github.com/openblog/web-service/internal/core"
	"github.com/openblog/web-service/internal/core/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct{}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `id, username, email, name, bio, photo_url, photo_key, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.ProfilePhoto.URL,
		&u.ProfilePhoto.Key,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.QueryRow(ctx, query, username))
}

// EmailInUse reports whether a user other than excludeUserID owns the email
func (r *UserRepository) EmailInUse(ctx context.Context, email, excludeUserID string) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	var inUse bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := db.QueryRow(ctx, query, email, excludeUserID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("check email in use: %w", err)
	}
	return inUse, nil
}

// UsernameInUse reports whether a user other than excludeUserID owns the username
func (r *UserRepository) UsernameInUse(ctx context.Context, username, excludeUserID string) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	var inUse bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
	if err := db.QueryRow(ctx, query, username, excludeUserID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("check username in use: %w", err)
	}
	return inUse, nil
}

// Update writes the full user record back in a single statement
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	db := database.GetPool()
	if db == nil {
		return errors.New("database connection not available")
	}

	query := `UPDATE users
		SET username = $2, email = $3, name = $4, bio = $5,
		    photo_url = $6, photo_key = $7, updated_at = now()
		WHERE id = $1`
	result, err := db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Name,
		user.Bio,
		user.ProfilePhoto.URL,
		user.ProfilePhoto.Key,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
