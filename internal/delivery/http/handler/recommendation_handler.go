package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/gdugdh24/expo-networking/internal/usecase/recommendation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error)
	ScorePool(req *recommendation.ScoreRequest) ([]domain.Recommendation, error)
	Explain(ctx context.Context, userID, candidateID string) (*domain.Explanation, error)
	GenerateIntro(ctx context.Context, userID, candidateID string) (*domain.Intro, error)
}

type RecommendationHandler struct {
	recommendations RecommendationService
	logger          *zap.Logger
}

func NewRecommendationHandler(recommendations RecommendationService, logger *zap.Logger) *RecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationHandler{
		recommendations: recommendations,
		logger:          logger.With(zap.String("component", "recommendation_handler")),
	}
}

// GetMyRecommendations handles GET /recommendations/me
// @Summary Get my recommendations
// @Description Ranked list of attendees worth meeting, best first
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} RecommendationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations/me [get]
func (h *RecommendationHandler) GetMyRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	recs, err := h.recommendations.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		h.writeError(c, err, "failed to get recommendations")
		return
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}

// Explain handles GET /recommendations/me/:candidate_id
// @Summary Explain a match
// @Description Score and reasons for one candidate, including ones below the threshold
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param candidate_id path string true "Candidate user ID"
// @Success 200 {object} domain.Explanation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations/me/{candidate_id} [get]
func (h *RecommendationHandler) Explain(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	candidateID, ok := candidateIDParam(c)
	if !ok {
		return
	}

	exp, err := h.recommendations.Explain(c.Request.Context(), userID, candidateID)
	if err != nil {
		h.writeError(c, err, "failed to explain recommendation")
		return
	}

	c.JSON(http.StatusOK, exp)
}

// GenerateIntro handles POST /recommendations/me/:candidate_id/intro
// @Summary Draft intro messages
// @Description Suggested opening messages for contacting a candidate
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param candidate_id path string true "Candidate user ID"
// @Success 200 {object} domain.Intro
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /recommendations/me/{candidate_id}/intro [post]
func (h *RecommendationHandler) GenerateIntro(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	candidateID, ok := candidateIDParam(c)
	if !ok {
		return
	}

	intro, err := h.recommendations.GenerateIntro(c.Request.Context(), userID, candidateID)
	if err != nil {
		h.writeError(c, err, "failed to generate intro")
		return
	}

	c.JSON(http.StatusOK, intro)
}

// Score handles POST /recommendations/score
// @Summary Score a supplied pool
// @Description Rank a caller-supplied pool against a subject without touching storage
// @Tags recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body recommendation.ScoreRequest true "Subject and pool"
// @Success 200 {object} RecommendationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations/score [post]
func (h *RecommendationHandler) Score(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req recommendation.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	recs, err := h.recommendations.ScorePool(&req)
	if err != nil {
		h.writeError(c, err, "failed to score pool")
		return
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}

func (h *RecommendationHandler) writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrSelfMatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "intro generation is unavailable"})
	default:
		h.logger.Error(message,
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return userID, true
}

func candidateIDParam(c *gin.Context) (string, bool) {
	candidateID := c.Param("candidate_id")
	if _, err := uuid.Parse(candidateID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid candidate_id",
		})
		return "", false
	}
	return candidateID, true
}
