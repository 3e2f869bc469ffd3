package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twitter-api/internal/usecase/user"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// SignupRequest represents the HTTP request body for registering a user
type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Password  string `json:"password"`
}

// LoginRequest represents the HTTP request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Omitted fields are left unchanged; an empty birth_date clears it.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

// Signup handles POST /signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}

	h.log.Info("Gin Signup request", zap.String("email", req.Email))

	resp, err := h.uc.Signup(c.Request.Context(), user.SignupRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Password:  req.Password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(resp))
}

// Login handles POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), user.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	users := make([]UserResponse, len(resp))
	for i := range resp {
		users[i] = toUserResponse(&resp[i])
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// UpdateUser handles PUT /users/:id/update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}

	h.log.Info("Gin UpdateUser request", zap.String("id", id.String()))

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}

// DeleteUser handles DELETE /users/:id/delete
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	h.log.Info("Gin DeleteUser request", zap.String("id", id.String()))

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp))
}
