package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openblog/web-service/internal/core/domain"
	"github.com/openblog/web-service/middleware"
)

// SettingsService implements the account settings business logic, most
// importantly the partial profile update that has to keep the durable user
// record and the session projection in agreement.
type SettingsService struct {
	users    domain.UserRepository
	uploader domain.PhotoUploader
}

// NewSettingsService creates a new settings service
func NewSettingsService(users domain.UserRepository, uploader domain.PhotoUploader) *SettingsService {
	return &SettingsService{
		users:    users,
		uploader: uploader,
	}
}

// GetSettings returns the durable user record backing the settings page.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "settings.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", userID, err)
	}
	return user, nil
}

// UpdateBasicInfo applies a partial profile update for the user.
//
// Candidate email and username values are checked for uniqueness against
// every other account before anything is staged for commit. A new profile
// photo is uploaded under the username the account had when the call
// started, not any replacement username staged by the same request. All
// staged fields are then committed to the user record in a single write.
//
// Changes to username, name and profile photo are also staged onto sess,
// the caller's session projection. The caller commits sess to the session
// store after this method returns nil; on error sess must be discarded.
// A request with no fields present is a no-op and writes nothing.
func (s *SettingsService) UpdateBasicInfo(ctx context.Context, userID string, sess *domain.SessionUser, req domain.UpdateBasicInfoRequest) error {
	ctx, span := middleware.StartSpan(ctx, "settings.update_basic_info", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", userID),
	))
	defer span.End()

	if req.Empty() {
		span.SetAttributes(attribute.Bool("profile.updated", false))
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load user %q: %w", userID, err)
	}

	// Photo storage key is the username at the time of the call. Captured
	// before a replacement username can be staged below.
	photoKey := user.Username

	if req.Email != nil {
		taken, err := s.users.EmailInUse(ctx, *req.Email, user.ID)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check email availability: %w", err)
		}
		if taken {
			span.SetAttributes(attribute.Bool("profile.email_taken", true))
			return fmt.Errorf("update email for user %q: %w", userID, domain.ErrEmailTaken)
		}
		user.Email = *req.Email
	}

	if req.Username != nil {
		taken, err := s.users.UsernameInUse(ctx, *req.Username, user.ID)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check username availability: %w", err)
		}
		if taken {
			span.SetAttributes(attribute.Bool("profile.username_taken", true))
			return fmt.Errorf("update username for user %q: %w", userID, domain.ErrUsernameTaken)
		}
		user.Username = *req.Username
		sess.Username = *req.Username
	}

	if len(req.ProfilePhoto) > 0 {
		url, err := s.uploader.Upload(ctx, req.ProfilePhoto, photoKey)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("upload profile photo for user %q: %w", userID, err)
		}
		user.ProfilePhoto = domain.ProfilePhoto{URL: url, Key: photoKey}
		sess.ProfilePhoto = url
	}

	if req.Name != nil {
		user.Name = *req.Name
		sess.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.users.Update(ctx, user); err != nil {
		span.RecordError(err)
		return fmt.Errorf("persist user %q: %w", userID, err)
	}

	span.SetAttributes(attribute.Bool("profile.updated", true))
	return nil
}
