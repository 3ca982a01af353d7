package v1

import (
	"context"

	"github.com/openblog/web-service/internal/core/domain"
)

// mockUserRepo is a function-field mock of domain.UserRepository.
type mockUserRepo struct {
	getByID       func(ctx context.Context, id string) (*domain.User, error)
	getByUsername func(ctx context.Context, username string) (*domain.User, error)
	emailInUse    func(ctx context.Context, email, excludeUserID string) (bool, error)
	usernameInUse func(ctx context.Context, username, excludeUserID string) (bool, error)
	update        func(ctx context.Context, user *domain.User) error

	emailChecks    int
	usernameChecks int
	updates        int
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsername != nil {
		return m.getByUsername(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) EmailInUse(ctx context.Context, email, excludeUserID string) (bool, error) {
	m.emailChecks++
	if m.emailInUse != nil {
		return m.emailInUse(ctx, email, excludeUserID)
	}
	return false, nil
}

func (m *mockUserRepo) UsernameInUse(ctx context.Context, username, excludeUserID string) (bool, error) {
	m.usernameChecks++
	if m.usernameInUse != nil {
		return m.usernameInUse(ctx, username, excludeUserID)
	}
	return false, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	m.updates++
	if m.update != nil {
		return m.update(ctx, user)
	}
	return nil
}

// mockUploader is a function-field mock of domain.PhotoUploader.
type mockUploader struct {
	upload  func(ctx context.Context, payload []byte, key string) (string, error)
	uploads int
}

func (m *mockUploader) Upload(ctx context.Context, payload []byte, key string) (string, error) {
	m.uploads++
	if m.upload != nil {
		return m.upload(ctx, payload, key)
	}
	return "https://cdn.example.com/avatars/" + key, nil
}

// mockBlogRepo is a function-field mock of domain.BlogRepository.
type mockBlogRepo struct {
	getBySlug             func(ctx context.Context, slug string) (*domain.Blog, error)
	addToReadingList      func(ctx context.Context, userID, blogID string) (bool, error)
	removeFromReadingList func(ctx context.Context, userID, blogID string) (bool, error)
	listReadingList       func(ctx context.Context, userID string, offset, limit int) ([]domain.ReadingListBlog, int, error)
}

func (m *mockBlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	if m.getBySlug != nil {
		return m.getBySlug(ctx, slug)
	}
	return nil, domain.ErrBlogNotFound
}

func (m *mockBlogRepo) AddToReadingList(ctx context.Context, userID, blogID string) (bool, error) {
	if m.addToReadingList != nil {
		return m.addToReadingList(ctx, userID, blogID)
	}
	return true, nil
}

func (m *mockBlogRepo) RemoveFromReadingList(ctx context.Context, userID, blogID string) (bool, error) {
	if m.removeFromReadingList != nil {
		return m.removeFromReadingList(ctx, userID, blogID)
	}
	return true, nil
}

func (m *mockBlogRepo) ListReadingList(ctx context.Context, userID string, offset, limit int) ([]domain.ReadingListBlog, int, error) {
	if m.listReadingList != nil {
		return m.listReadingList(ctx, userID, offset, limit)
	}
	return nil, 0, nil
}

var (
	_ domain.UserRepository = (*mockUserRepo)(nil)
	_ domain.PhotoUploader  = (*mockUploader)(nil)
	_ domain.BlogRepository = (*mockBlogRepo)(nil)
)
