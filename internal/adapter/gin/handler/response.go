package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"twitter-api/internal/domain/user"
	tweetuc "twitter-api/internal/usecase/tweet"
	useruc "twitter-api/internal/usecase/user"
	pkgerrors "twitter-api/pkg/errors"
	"twitter-api/pkg/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID        string  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

// TweetResponse is the public view of a tweet.
type TweetResponse struct {
	ID        string       `json:"tweet_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
	By        UserResponse `json:"by"`
}

func formatBirthDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(user.BirthDateLayout)
	return &s
}

func toUserResponse(u *useruc.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: formatBirthDate(u.BirthDate),
	}
}

func toTweetResponse(t *tweetuc.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By: UserResponse{
			ID:        t.By.ID.String(),
			Email:     t.By.Email,
			FirstName: t.By.FirstName,
			LastName:  t.By.LastName,
			BirthDate: formatBirthDate(t.By.BirthDate),
		},
	}
}

// parseID reads the :id path parameter. On failure it writes a 400 and returns false.
func parseID(c *gin.Context, log *zap.Logger) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("Invalid ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "ID must be a valid UUID",
		})
		return uuid.Nil, false
	}
	return id, true
}

// badRequest reports a body that could not be decoded.
func badRequest(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("Invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: "request body must be valid JSON",
	})
}

// handleError converts usecase errors to HTTP responses.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	log = logger.WithContext(c.Request.Context(), log)

	if apiErr, ok := pkgerrors.AsAPIError(err); ok {
		status := apiErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.Error(err))
			c.JSON(status, ErrorResponse{Error: apiErr.Code(), Message: "An internal error occurred"})
			return
		}
		c.JSON(status, ErrorResponse{Error: apiErr.Code(), Message: apiErr.Error()})
		return
	}

	log.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
