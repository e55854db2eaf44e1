package handler

import (
	"net/http"

	"sprint2/internal/model"
	"sprint2/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles the generic users collection
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new User handler
func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger.Named("users")}
}

// Create handles POST /addUser
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Error adding user")
		return
	}
	h.logger.Info("user created", accountFields(user)...)
	c.JSON(http.StatusCreated, model.NewCreatedResponse("User added successfully", user.ID.Hex()))
}

// Update handles PUT /updateUser/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.userService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, h.logger, err, "Error updating user")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("User updated successfully"))
}

// Delete handles DELETE /deleteUser/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting user")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("User deleted successfully"))
}

// List handles GET /userTEST
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error fetching users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /getUserDetails/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error fetching user details")
		return
	}
	c.JSON(http.StatusOK, user)
}
