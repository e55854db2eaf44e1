package server

import (
	"sprint2/internal/config"
	"sprint2/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupRouter(cfg *config.Config, h *Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger.Named("http")),
		middleware.Recovery(logger),
		middleware.Timeout(cfg.Server.RequestTimeout()),
	)

	r.GET("/", h.Health.Banner)
	r.GET("/health", h.Health.Health)

	// Users
	r.POST("/addUser", h.User.Create)
	r.PUT("/updateUser/:id", h.User.Update)
	r.DELETE("/deleteUser/:id", h.User.Delete)
	r.GET("/userTEST", h.User.List)
	r.GET("/getUserDetails/:id", h.User.Get)

	// Students
	r.POST("/addEleve", h.Student.Create)
	r.PUT("/updateEleve/:id", h.Student.Update)
	r.DELETE("/deleteEleve/:id", h.Student.Delete)
	r.GET("/eleves", h.Student.List)
	r.GET("/getEleveDetails/:id", h.Student.Get)

	// Teachers
	r.POST("/addEnseignant", h.Teacher.Create)
	r.PUT("/updateEnseignant/:id", h.Teacher.Update)
	r.DELETE("/deleteEnseignant/:id", h.Teacher.Delete)
	r.GET("/enseignants", h.Teacher.List)
	r.GET("/getEnseignantDetails/:id", h.Teacher.Get)

	// Teacher-to-class links. With one segment :id is the link, with two it
	// is the teacher.
	r.POST("/addEnseignantToClasse/:teacherId/:classId", h.TeacherClass.Link)
	r.DELETE("/removeEnseignantFromClasse/:id", h.TeacherClass.Unlink)
	r.DELETE("/removeEnseignantFromClasse/:id/:classId", h.TeacherClass.UnlinkPair)
	r.PUT("/updateProfClass/:id", h.TeacherClass.Update)
	r.GET("/getAllProfClass", h.TeacherClass.List)
	r.GET("/getProfClassDetails/:id", h.TeacherClass.Get)

	return r
}
