package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	database "github.com/openblog/web-service/internal/core"
	"github.com/openblog/web-service/internal/core/domain"
)

// BlogRepository implements domain.BlogRepository using PostgreSQL
type BlogRepository struct{}

// NewBlogRepository creates a new PostgreSQL blog repository
func NewBlogRepository() *BlogRepository {
	return &BlogRepository{}
}

// GetBySlug retrieves a blog by slug
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	var b domain.Blog
	query := `SELECT id, slug, owner_id, title, content, banner_url, total_bookmarks, created_at
		FROM blogs WHERE slug = $1`
	err := db.QueryRow(ctx, query, slug).Scan(
		&b.ID,
		&b.Slug,
		&b.OwnerID,
		&b.Title,
		&b.Content,
		&b.BannerURL,
		&b.TotalBookmarks,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("query blog: %w", err)
	}
	return &b, nil
}

// AddToReadingList bookmarks the blog for the user. The bookmark row and the
// blog's counter move in one transaction so the count never drifts.
func (r *BlogRepository) AddToReadingList(ctx context.Context, userID, blogID string) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`INSERT INTO reading_list (user_id, blog_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, blog_id) DO NOTHING`,
		userID, blogID,
	)
	if err != nil {
		return false, fmt.Errorf("insert reading list entry: %w", err)
	}
	added := result.RowsAffected() > 0

	if added {
		_, err = tx.Exec(ctx,
			`UPDATE blogs SET total_bookmarks = total_bookmarks + 1 WHERE id = $1`,
			blogID,
		)
		if err != nil {
			return false, fmt.Errorf("increment bookmark count: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return added, nil
}

// RemoveFromReadingList removes the bookmark and decrements the counter,
// never below zero.
func (r *BlogRepository) RemoveFromReadingList(ctx context.Context, userID, blogID string) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`DELETE FROM reading_list WHERE user_id = $1 AND blog_id = $2`,
		userID, blogID,
	)
	if err != nil {
		return false, fmt.Errorf("delete reading list entry: %w", err)
	}
	removed := result.RowsAffected() > 0

	if removed {
		_, err = tx.Exec(ctx,
			`UPDATE blogs SET total_bookmarks = GREATEST(total_bookmarks - 1, 0) WHERE id = $1`,
			blogID,
		)
		if err != nil {
			return false, fmt.Errorf("decrement bookmark count: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return removed, nil
}

// ListReadingList returns one page of the user's bookmarks, newest first,
// plus the total bookmark count for pagination.
func (r *BlogRepository) ListReadingList(ctx context.Context, userID string, offset, limit int) ([]domain.ReadingListBlog, int, error) {
	db := database.GetPool()
	if db == nil {
		return nil, 0, errors.New("database connection not available")
	}

	var total int
	countQuery := `SELECT count(*) FROM reading_list WHERE user_id = $1`
	if err := db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reading list: %w", err)
	}

	query := `SELECT b.id, b.slug, b.owner_id, b.title, b.content, b.banner_url,
			b.total_bookmarks, b.created_at,
			u.username, u.name, u.photo_url, rl.added_at
		FROM reading_list rl
		JOIN blogs b ON b.id = rl.blog_id
		JOIN users u ON u.id = b.owner_id
		WHERE rl.user_id = $1
		ORDER BY rl.added_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query reading list: %w", err)
	}
	defer rows.Close()

	var blogs []domain.ReadingListBlog
	for rows.Next() {
		var b domain.ReadingListBlog
		err := rows.Scan(
			&b.ID,
			&b.Slug,
			&b.OwnerID,
			&b.Title,
			&b.Content,
			&b.BannerURL,
			&b.TotalBookmarks,
			&b.CreatedAt,
			&b.OwnerUsername,
			&b.OwnerName,
			&b.OwnerPhotoURL,
			&b.AddedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reading list entry: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reading list: %w", err)
	}

	return blogs, total, nil
}

var _ domain.BlogRepository = (*BlogRepository)(nil)
