package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"twitter-api/internal/usecase/tweet"
)

// TweetHandler handles HTTP requests for tweet operations
type TweetHandler struct {
	uc  tweet.Usecase
	log *zap.Logger
}

// NewTweetHandler creates a new TweetHandler instance
func NewTweetHandler(uc tweet.Usecase, log *zap.Logger) *TweetHandler {
	return &TweetHandler{uc: uc, log: log}
}

// PostTweetRequest represents the HTTP request body for posting a tweet
type PostTweetRequest struct {
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// UpdateTweetRequest represents the HTTP request body for editing a tweet
type UpdateTweetRequest struct {
	Content string `json:"content"`
}

// ListTweets handles GET /
func (h *TweetHandler) ListTweets(c *gin.Context) {
	resp, err := h.uc.ListTweets(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	tweets := make([]TweetResponse, len(resp))
	for i := range resp {
		tweets[i] = toTweetResponse(&resp[i])
	}
	c.JSON(http.StatusOK, tweets)
}

// PostTweet handles POST /post
func (h *TweetHandler) PostTweet(c *gin.Context) {
	var req PostTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}

	var userID uuid.UUID
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			h.log.Warn("Invalid author ID", zap.String("user_id", req.UserID))
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "user_id must be a valid UUID",
			})
			return
		}
		userID = id
	}

	resp, err := h.uc.PostTweet(c.Request.Context(), tweet.PostTweetRequest{Content: req.Content, UserID: userID})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toTweetResponse(resp))
}

// GetTweet handles GET /tweets/:id
func (h *TweetHandler) GetTweet(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	resp, err := h.uc.GetTweet(c.Request.Context(), tweet.GetTweetRequest{ID: id})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTweetResponse(resp))
}

// UpdateTweet handles PUT /tweets/:id/update
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	var req UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}

	resp, err := h.uc.UpdateTweet(c.Request.Context(), tweet.UpdateTweetRequest{ID: id, Content: req.Content})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTweetResponse(resp))
}

// DeleteTweet handles DELETE /tweets/:id/delete
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteTweet(c.Request.Context(), tweet.DeleteTweetRequest{ID: id})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTweetResponse(resp))
}
