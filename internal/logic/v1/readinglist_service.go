package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openblog/web-service/internal/core/domain"
	"github.com/openblog/web-service/internal/readtime"
	"github.com/openblog/web-service/middleware"
)

// readingListPageSize is how many blogs one reading-list page holds.
const readingListPageSize = 20

// ReadingListService implements the reading-list bookmarking logic
type ReadingListService struct {
	blogs domain.BlogRepository
}

// NewReadingListService creates a new reading-list service
func NewReadingListService(blogs domain.BlogRepository) *ReadingListService {
	return &ReadingListService{blogs: blogs}
}

// Add bookmarks the blog identified by slug for the user. Adding a blog
// that is already bookmarked is a no-op, not an error.
func (s *ReadingListService) Add(ctx context.Context, userID, slug string) error {
	ctx, span := middleware.StartSpan(ctx, "readinglist.add", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
		attribute.String("blog.slug", slug),
	))
	defer span.End()

	blog, err := s.blogs.GetBySlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load blog %q: %w", slug, err)
	}

	added, err := s.blogs.AddToReadingList(ctx, userID, blog.ID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("add blog %q to reading list: %w", slug, err)
	}

	span.SetAttributes(attribute.Bool("readinglist.added", added))
	return nil
}

// Remove drops the blog identified by slug from the user's reading list.
// Removing a blog that is not bookmarked is a no-op, not an error.
func (s *ReadingListService) Remove(ctx context.Context, userID, slug string) error {
	ctx, span := middleware.StartSpan(ctx, "readinglist.remove", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
		attribute.String("blog.slug", slug),
	))
	defer span.End()

	blog, err := s.blogs.GetBySlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load blog %q: %w", slug, err)
	}

	removed, err := s.blogs.RemoveFromReadingList(ctx, userID, blog.ID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove blog %q from reading list: %w", slug, err)
	}

	span.SetAttributes(attribute.Bool("readinglist.removed", removed))
	return nil
}

// List returns one page of the user's reading list, newest bookmarks first,
// with the estimated reading time filled in per blog. Pages are 1-based;
// out-of-range page numbers clamp to the first page.
func (s *ReadingListService) List(ctx context.Context, userID string, page int) (*domain.ReadingListPage, error) {
	ctx, span := middleware.StartSpan(ctx, "readinglist.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
		attribute.Int("page", page),
	))
	defer span.End()

	if page < 1 {
		page = 1
	}

	offset := (page - 1) * readingListPageSize
	blogs, total, err := s.blogs.ListReadingList(ctx, userID, offset, readingListPageSize)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list reading list for user %q: %w", userID, err)
	}

	for i := range blogs {
		blogs[i].ReadingTimeMin = readtime.Estimate(blogs[i].Content)
	}

	totalPages := (total + readingListPageSize - 1) / readingListPageSize

	span.SetAttributes(attribute.Int("readinglist.total", total))
	return &domain.ReadingListPage{
		Blogs:      blogs,
		Page:       page,
		TotalBlogs: total,
		TotalPages: totalPages,
	}, nil
}
