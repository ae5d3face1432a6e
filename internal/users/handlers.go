package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandlers provides HTTP handlers for user operations
type UserHandlers struct {
	userService UserService
	logger      *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userService UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user-related routes
func (h *UserHandlers) RegisterRoutes(router *gin.Engine) {
	router.POST("/user", h.CreateUser)
	router.GET("/user/:userId", h.GetUser)
	router.PUT("/user/:userId", h.UpdateUser)
	router.DELETE("/user/:userId", h.DeleteUser)
	router.GET("/users", h.ListUsers)
}

// CreateUser handles POST /user
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /user/:userId
func (h *UserHandlers) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if !IsNotFound(err) && !IsInvalidID(err) {
			h.logger.Error("Failed to get user", zap.String("user_id", userID), zap.Error(err))
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /user/:userId
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		if IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No user found with specified ID"})
			return
		}
		if !IsInvalidID(err) {
			h.logger.Error("Failed to update user", zap.String("user_id", userID), zap.Error(err))
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /user/:userId
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	err := h.userService.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		if IsNotFound(err) {
			c.JSON(http.StatusNotFound, "User with specified ID not found!")
			return
		}
		if !IsInvalidID(err) {
			h.logger.Error("Failed to delete user", zap.String("user_id", userID), zap.Error(err))
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, "User successfully deleted!")
}

// ListUsers handles GET /users
func (h *UserHandlers) ListUsers(c *gin.Context) {
	userList, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userList)
}

// respondError maps typed errors onto HTTP status codes. Per-request
// failures never take the process down; unknown errors surface as 500.
func (h *UserHandlers) respondError(c *gin.Context, err error) {
	switch {
	case IsValidationFailed(err), IsInvalidID(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
