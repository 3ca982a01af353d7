package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/openblog/web-service/internal/core/domain"
	logicv1 "github.com/openblog/web-service/internal/logic/v1"
	"github.com/openblog/web-service/middleware"
)

// ReadingListHandler handles HTTP requests for the reading-list feature
type ReadingListHandler struct {
	service *logicv1.ReadingListService
}

// NewReadingListHandler creates a new reading-list handler
func NewReadingListHandler(service *logicv1.ReadingListService) *ReadingListHandler {
	return &ReadingListHandler{service: service}
}

// Add handles PUT /api/v1/blogs/:slug/reading-list
func (h *ReadingListHandler) Add(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.GetString("user_id")
	slug := c.Param("slug")
	span.SetAttributes(attribute.String("blog.slug", slug))

	if err := h.service.Add(ctx, userID, slug); err != nil {
		span.RecordError(err)
		logger.Error("Failed to add to reading list", zap.String("slug", slug), zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrBlogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusOK)
}

// Remove handles DELETE /api/v1/blogs/:slug/reading-list
func (h *ReadingListHandler) Remove(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.GetString("user_id")
	slug := c.Param("slug")
	span.SetAttributes(attribute.String("blog.slug", slug))

	if err := h.service.Remove(ctx, userID, slug); err != nil {
		span.RecordError(err)
		logger.Error("Failed to remove from reading list", zap.String("slug", slug), zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrBlogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusOK)
}

// List handles GET /api/v1/reading-list?page=N
func (h *ReadingListHandler) List(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.GetString("user_id")

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid page number."})
			return
		}
		page = parsed
	}

	result, err := h.service.List(ctx, userID, page)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list reading list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
