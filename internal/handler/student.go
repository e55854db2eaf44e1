package handler

import (
	"net/http"

	"sprint2/internal/model"
	"sprint2/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StudentHandler handles eleve requests
type StudentHandler struct {
	studentService *service.StudentService
	logger         *zap.Logger
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{studentService: studentService, logger: logger.Named("eleves")}
}

// Create handles POST /addEleve
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Error adding student")
		return
	}
	h.logger.Info("student created", accountFields(student)...)
	c.JSON(http.StatusCreated, model.NewCreatedResponse("Student added successfully", student.ID.Hex()))
}

// Update handles PUT /updateEleve/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req model.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.studentService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, h.logger, err, "Error updating student")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Student updated successfully"))
}

// Delete handles DELETE /deleteEleve/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error deleting student")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Student deleted successfully"))
}

// List handles GET /eleves
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error fetching students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// Get handles GET /getEleveDetails/:id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error fetching student details")
		return
	}
	c.JSON(http.StatusOK, student)
}
