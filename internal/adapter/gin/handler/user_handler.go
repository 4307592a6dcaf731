package handler

import (
	"net/http"

	"user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

// CreateUserRequest represents the HTTP request body for creating a user.
// Presence of every field is checked by the usecase so both transports
// answer with the same message.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateUser handles POST /users/create
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx, h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   string(apperrors.KindBadRequest),
			Message: "request body must be a JSON object with name, email and password",
		})
		return
	}

	log.Info("Gin CreateUser request", zap.String("name", req.Name), zap.String("email", req.Email))

	resp, err := h.uc.CreateUser(ctx, user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	logger.WithContext(ctx, h.log).Info("Gin GetUser request", zap.String("id", id))

	resp, err := h.uc.GetUser(ctx, user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	logger.WithContext(ctx, h.log).Info("Gin ListUsers request")

	resp, err := h.uc.ListUsers(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	c.JSON(http.StatusOK, users)
}

// handleError converts usecase errors to HTTP responses. Only categorized
// caller errors expose their message.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context(), h.log)

	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind() == apperrors.KindInternal {
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   string(apperrors.KindInternal),
			Message: apperrors.InternalMessage,
		})
		return
	}

	log.Warn("request rejected", zap.String("path", c.FullPath()), zap.String("kind", string(appErr.Kind())), zap.Error(err))
	c.JSON(appErr.HTTPStatus(), ErrorResponse{
		Error:   string(appErr.Kind()),
		Message: appErr.Error(),
	})
}
