package handler

import (
	"net/http"

	"sprint2/internal/model"
	"sprint2/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TeacherHandler handles enseignant requests
type TeacherHandler struct {
	teacherService *service.TeacherService
	logger         *zap.Logger
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacherService *service.TeacherService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService, logger: logger.Named("enseignants")}
}

// Create handles POST /addEnseignant
func (h *TeacherHandler) Create(c *gin.Context) {
	var req model.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Error adding teacher")
		return
	}
	h.logger.Info("teacher created", accountFields(teacher)...)
	c.JSON(http.StatusCreated, model.NewCreatedResponse("Teacher added successfully", teacher.ID.Hex()))
}

// Update handles PUT /updateEnseignant/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	var req model.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.teacherService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, h.logger, err, "Error updating teacher")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Teacher updated successfully"))
}

// Delete handles DELETE /deleteEnseignant/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teacherService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting teacher")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Teacher deleted successfully"))
}

// List handles GET /enseignants
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error fetching teachers")
		return
	}
	c.JSON(http.StatusOK, teachers)
}

// Get handles GET /getEnseignantDetails/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.teacherService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error fetching teacher details")
		return
	}
	c.JSON(http.StatusOK, teacher)
}
