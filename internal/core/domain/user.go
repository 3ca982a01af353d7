package domain

import "time"

// ProfilePhoto is the stored photo reference: the public URL plus the
// object-storage key it was uploaded under.
type ProfilePhoto struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// User is the durable user record. Username and email are unique across users.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	ProfilePhoto ProfilePhoto `json:"profilePhoto"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// SessionUser is the denormalized projection of a User carried in the session
// record. It must never diverge from the durable record on username, name or
// profile photo after a successful profile update.
type SessionUser struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	ProfilePhoto  string `json:"profile_photo"`
	Authenticated bool   `json:"authenticated"`
}

// UpdateBasicInfoRequest carries a partial profile update. Every field is
// independently present-or-absent; a nil field means "leave unchanged".
// ProfilePhoto is the raw image payload, already decoded by the boundary.
type UpdateBasicInfoRequest struct {
	Username     *string
	Email        *string
	Name         *string
	Bio          *string
	ProfilePhoto []byte
}

// Empty reports whether the request carries no fields at all.
func (r UpdateBasicInfoRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Name == nil && r.Bio == nil && len(r.ProfilePhoto) == 0
}
