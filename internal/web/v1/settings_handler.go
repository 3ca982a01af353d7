package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/openblog/web-service/internal/core/domain"
	logicv1 "github.com/openblog/web-service/internal/logic/v1"
	"github.com/openblog/web-service/middleware"
)

// maxPhotoBytes caps the decoded profile photo payload, matching the limit
// the web client enforces before submitting.
const maxPhotoBytes = 1000 * 1024

// Messages shown to the user on duplicate identity fields. Kept
// human-readable since the client renders them verbatim in a snackbar.
const (
	msgEmailTaken    = "Sorry, an account is already associated with this email address."
	msgUsernameTaken = "Sorry, that username is already taken. Please choose a different one."
	msgPhotoTooLarge = "Your profile photo should be less than 1MB."
)

// basicInfoPayload is the wire shape of a profile update. Every field is
// optional; ProfilePhoto arrives as a base64 data URL.
type basicInfoPayload struct {
	Name         *string `json:"name"`
	Username     *string `json:"username"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Bio          *string `json:"bio"`
	ProfilePhoto string  `json:"profilePhoto"`
}

// SettingsHandler handles HTTP requests for account settings
type SettingsHandler struct {
	service  *logicv1.SettingsService
	sessions domain.SessionRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service *logicv1.SettingsService, sessions domain.SessionRepository) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		sessions: sessions,
	}
}

// GetSettings handles GET /api/v1/settings. It returns the durable user
// record plus the session projection the settings page renders.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		logger.Warn("GetSettings: no session in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.service.GetSettings(ctx, session.User.UserID)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to load settings", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentUser": user,
		"sessionUser": session.User,
	})
}

// UpdateBasicInfo handles PUT /api/v1/settings/basic-info.
//
// The handler is the boundary pre-filter in front of the settings service:
// it decodes and size-checks the photo payload, drops an unchanged username,
// and drops an empty photo. After the service succeeds it commits the staged
// session projection back to the session store.
func (h *SettingsHandler) UpdateBasicInfo(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		logger.Warn("UpdateBasicInfo: no session in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var payload basicInfoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": sanitizeValidationError(err)})
		return
	}
	span.SetAttributes(attribute.Bool("request.valid", true))

	photo, err := decodePhotoDataURL(payload.ProfilePhoto)
	if err != nil {
		logger.Warn("Invalid profile photo payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile photo payload."})
		return
	}
	if len(photo) > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgPhotoTooLarge})
		return
	}

	// Unchanged username means "no change"; dropping it here keeps the
	// service from running a pointless availability check.
	if payload.Username != nil && *payload.Username == session.User.Username {
		payload.Username = nil
	}

	req := domain.UpdateBasicInfoRequest{
		Name:         payload.Name,
		Username:     payload.Username,
		Email:        payload.Email,
		Bio:          payload.Bio,
		ProfilePhoto: photo,
	}

	if err := h.service.UpdateBasicInfo(ctx, session.User.UserID, &session.User, req); err != nil {
		span.RecordError(err)
		logger.Error("Failed to update basic info", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgEmailTaken})
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgUsernameTaken})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Explicit session commit. The durable record is already written; a
	// session write failure here leaves the projection stale until the next
	// login, so it is logged loudly but does not fail the request.
	if err := h.sessions.Save(ctx, session); err != nil {
		span.RecordError(err)
		logger.Error("Failed to persist session after profile update",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}

	logger.Info("Profile updated", zap.String("user_id", session.User.UserID))
	c.Status(http.StatusOK)
}
