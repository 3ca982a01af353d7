package domain

import "context"

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// EmailInUse reports whether any user other than excludeUserID owns the email.
	EmailInUse(ctx context.Context, email, excludeUserID string) (bool, error)
	// UsernameInUse reports whether any user other than excludeUserID owns the username.
	UsernameInUse(ctx context.Context, username, excludeUserID string) (bool, error)
	// Update writes the full record back in a single statement.
	Update(ctx context.Context, user *User) error
}

// BlogRepository defines the interface for blog and reading-list data access
type BlogRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Blog, error)
	// AddToReadingList bookmarks the blog for the user and bumps the blog's
	// bookmark counter. Returns false when the bookmark already existed.
	AddToReadingList(ctx context.Context, userID, blogID string) (bool, error)
	// RemoveFromReadingList removes the bookmark and decrements the counter.
	// Returns false when there was no bookmark to remove.
	RemoveFromReadingList(ctx context.Context, userID, blogID string) (bool, error)
	// ListReadingList returns one page of the user's bookmarks plus the total count.
	ListReadingList(ctx context.Context, userID string, offset, limit int) ([]ReadingListBlog, int, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// FindByID returns nil, nil for a missing or expired session.
	FindByID(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, session *Session) error
	// Save writes the session's user projection back to the store.
	Save(ctx context.Context, session *Session) error
	DeleteByID(ctx context.Context, id string) error
}

// PhotoUploader uploads an image payload under the given storage key and
// returns the public URL it is served from.
type PhotoUploader interface {
	Upload(ctx context.Context, payload []byte, key string) (string, error)
}
