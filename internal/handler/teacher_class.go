package handler

import (
	"net/http"

	"sprint2/internal/model"
	"sprint2/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TeacherClassHandler handles the teacher-to-class link routes
type TeacherClassHandler struct {
	linkService *service.TeacherClassService
	logger      *zap.Logger
}

// NewTeacherClassHandler creates a new link handler
func NewTeacherClassHandler(linkService *service.TeacherClassService, logger *zap.Logger) *TeacherClassHandler {
	return &TeacherClassHandler{linkService: linkService, logger: logger.Named("prof_classes")}
}

// Link handles POST /addEnseignantToClasse/:teacherId/:classId
func (h *TeacherClassHandler) Link(c *gin.Context) {
	link, err := h.linkService.Link(c.Request.Context(), c.Param("teacherId"), c.Param("classId"))
	if err != nil {
		respondError(c, h.logger, err, "Error assigning teacher to class")
		return
	}
	c.JSON(http.StatusOK, model.NewCreatedResponse("Teacher assigned to class successfully", link.ID.Hex()))
}

// Unlink handles DELETE /removeEnseignantFromClasse/:id, where id names the link.
func (h *TeacherClassHandler) Unlink(c *gin.Context) {
	if err := h.linkService.Unlink(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Error removing teacher from class")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Teacher removed from class successfully"))
}

// UnlinkPair handles DELETE /removeEnseignantFromClasse/:id/:classId, where id
// names the teacher. Removing a pair that is not linked still succeeds.
func (h *TeacherClassHandler) UnlinkPair(c *gin.Context) {
	removed, err := h.linkService.UnlinkPair(c.Request.Context(), c.Param("id"), c.Param("classId"))
	if err != nil {
		respondError(c, h.logger, err, "Error removing teacher from class")
		return
	}
	if !removed {
		c.JSON(http.StatusOK, model.NewMessageResponse("Teacher was not assigned to class"))
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Teacher removed from class successfully"))
}

// Update handles PUT /updateProfClass/:id
func (h *TeacherClassHandler) Update(c *gin.Context) {
	var req model.UpdateTeacherClassRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.linkService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, h.logger, err, "Error updating teacher-class link")
		return
	}
	c.JSON(http.StatusOK, model.NewMessageResponse("Teacher-class link updated successfully"))
}

// List handles GET /getAllProfClass
func (h *TeacherClassHandler) List(c *gin.Context) {
	links, err := h.linkService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Error fetching teacher-class links")
		return
	}
	c.JSON(http.StatusOK, links)
}

// Get handles GET /getProfClassDetails/:id
func (h *TeacherClassHandler) Get(c *gin.Context) {
	link, err := h.linkService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Error fetching teacher-class link")
		return
	}
	c.JSON(http.StatusOK, link)
}
