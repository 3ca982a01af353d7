package domain

import "errors"

// Sentinel errors for profile and reading-list operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already owns the candidate email.
	// HTTP Status: 400 Bad Request
	ErrEmailTaken = errors.New("email already in use")

	// ErrUsernameTaken indicates another account already owns the candidate username.
	// HTTP Status: 400 Bad Request
	ErrUsernameTaken = errors.New("username already taken")

	// ErrBlogNotFound indicates the requested blog does not exist.
	// HTTP Status: 404 Not Found
	ErrBlogNotFound = errors.New("blog not found")

	// ErrUnauthenticated indicates the request carries no valid session.
	// HTTP Status: 401 Unauthorized
	ErrUnauthenticated = errors.New("not authenticated")
)
