package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/SrikarVamsi/Gem/models"
	"github.com/SrikarVamsi/Gem/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckRunner runs one fact-check request end to end
type CheckRunner interface {
	Check(ctx context.Context, req service.CheckRequest) (*models.CheckResponse, error)
}

// FeedbackStore persists verdict feedback. It is optional; without one
// the feedback endpoint acknowledges and discards.
type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
}

// CheckHandler handles HTTP requests for checks and feedback
type CheckHandler struct {
	checks   CheckRunner
	feedback FeedbackStore
	logger   *zap.Logger
}

// NewCheckHandler creates a new check handler. feedback may be nil.
func NewCheckHandler(checks CheckRunner, feedback FeedbackStore, logger *zap.Logger) *CheckHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckHandler{
		checks:   checks,
		feedback: feedback,
		logger:   logger,
	}
}

// CheckRequest represents the request body for a check
type CheckRequest struct {
	Content      string `json:"content" binding:"required"`
	LanguageHint string `json:"language_hint"`
}

// FeedbackRequest represents the request body for feedback
type FeedbackRequest struct {
	Content string  `json:"content" binding:"required"`
	Label   string  `json:"label" binding:"required"`
	Helpful *bool   `json:"helpful" binding:"required"`
	Notes   *string `json:"notes"`
}

// Check handles POST /check
func (h *CheckHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	requestID := uuid.New().String()
	logger := h.logger.With(zap.String("request_id", requestID))

	result, err := h.checks.Check(c.Request.Context(), service.CheckRequest{
		Content:      req.Content,
		LanguageHint: req.LanguageHint,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "content must not be empty",
				},
			})
			return
		}

		var synthErr *service.SynthesisError
		if errors.As(err, &synthErr) {
			logger.Error("verdict synthesis exhausted retries", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SYNTHESIS_FAILED",
					"message": "analysis service could not be reached",
				},
			})
			return
		}

		logger.Error("check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHECK_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	logger.Info("check completed",
		zap.String("label", string(result.Analysis.Label)),
		zap.Int("sources", len(result.Sources)),
		zap.Bool("suspicious", result.Scam.IsSuspicious))

	c.JSON(http.StatusOK, result)
}

// Feedback handles POST /feedback. The endpoint always acknowledges;
// a storage failure is logged, never surfaced.
func (h *CheckHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if h.feedback == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	record := &models.Feedback{
		Content: req.Content,
		Label:   models.Label(req.Label),
		Helpful: *req.Helpful,
		Notes:   req.Notes,
	}
	if err := h.feedback.Create(c.Request.Context(), record); err != nil {
		h.logger.Warn("failed to store feedback", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": record.ID})
}
