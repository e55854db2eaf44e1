package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sprint2/internal/config"
	"sprint2/internal/model"
	"sprint2/internal/repository"
	"sprint2/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	require.NoError(t, repos.EnsureIndexes(context.Background()))

	logger := zap.NewNop()
	cfg := &config.Config{}
	users := NewUserHandler(service.NewUserService(repos.Users), logger)
	students := NewStudentHandler(service.NewStudentService(repos.Students), logger)
	teachers := NewTeacherHandler(service.NewTeacherService(cfg, repos.Teachers, repos.TeacherClasses, logger), logger)
	links := NewTeacherClassHandler(service.NewTeacherClassService(repos.TeacherClasses), logger)

	r := gin.New()
	r.POST("/addUser", users.Create)
	r.GET("/getUserDetails/:id", users.Get)
	r.POST("/addEleve", students.Create)
	r.PUT("/updateEleve/:id", students.Update)
	r.DELETE("/deleteEleve/:id", students.Delete)
	r.GET("/eleves", students.List)
	r.GET("/getEleveDetails/:id", students.Get)
	r.POST("/addEnseignant", teachers.Create)
	r.POST("/addEnseignantToClasse/:teacherId/:classId", links.Link)
	r.DELETE("/removeEnseignantFromClasse/:id", links.Unlink)
	r.DELETE("/removeEnseignantFromClasse/:id/:classId", links.UnlinkPair)
	r.PUT("/updateProfClass/:id", links.Update)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) model.MessageResponse {
	t.Helper()
	var resp model.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

const alice = `{"username":"alice","password":"p","email":"a@x.com","numInscrit":"123","userClass":"64b7f0c2a1b2c3d4e5f60718"}`

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("student %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: username is required", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: \"x\"", service.ErrInvalidID), http.StatusBadRequest},
		{fmt.Errorf("teacher %w", service.ErrDuplicate), http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.GET("/store", func(c *gin.Context) {
		respondError(c, zap.New(core), errors.New("socket closed"), "Error fetching students")
	})
	r.GET("/slow", func(c *gin.Context) {
		respondError(c, zap.New(core), fmt.Errorf("student store: %w", context.DeadlineExceeded), "Error fetching students")
	})

	w := do(r, http.MethodGet, "/store", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error fetching students", decodeMessage(t, w).Message)

	w = do(r, http.MethodGet, "/slow", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "request timed out", decodeMessage(t, w).Message)

	require.Equal(t, 2, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "socket closed")
}

func TestStudentHandlers(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/addEleve", alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeMessage(t, w)
	assert.Equal(t, "Student added successfully", created.Message)
	require.NotEmpty(t, created.ID)

	w = do(r, http.MethodPost, "/addEleve", `{"username":"bob","password":"p","email":"b@x.com","numInscrit":"123","userClass":"64b7f0c2a1b2c3d4e5f60718"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/addEleve", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/updateEleve/"+created.ID, `{"newEtat":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/getEleveDetails/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.EqualValues(t, 0, got["etat"])
	assert.Equal(t, "alice", got["username"])
	assert.Equal(t, "student", got["role"])
	assert.NotContains(t, got, "password")

	w = do(r, http.MethodGet, "/getEleveDetails/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodGet, "/getEleveDetails/nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/eleves", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodDelete, "/deleteEleve/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodDelete, "/deleteEleve/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/eleves", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUserHandlerRoleFallback(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/addUser", `{"username":"bob","password":"pw","email":"bob@x.com","role":"hacker"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeMessage(t, w).ID

	w = do(r, http.MethodGet, "/getUserDetails/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.RoleUser, got["role"])
}

func TestCreateBindingRules(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/addUser", `{"username":"bob","email":"bob@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password is required", decodeMessage(t, w).Message)

	w = do(r, http.MethodPost, "/addEleve", `{"username":"alice","password":"p","email":"a@x.com","userClass":"64b7f0c2a1b2c3d4e5f60718"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "numInscrit is required", decodeMessage(t, w).Message)

	w = do(r, http.MethodPost, "/addUser", `{"username":"   ","password":"pw","email":"x@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "blank after trimming")

	for i, email := range []string{"admin@localhost", "élève@école.fr", "a@b"} {
		body := fmt.Sprintf(`{"username":"u%d","password":"pw","email":%q}`, i, email)
		w = do(r, http.MethodPost, "/addUser", body)
		assert.Equal(t, http.StatusCreated, w.Code, email)
	}
}

func TestTeacherDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/addEnseignant", `{"username":"dupont","password":"pw","email":"d@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/addEnseignant", `{"username":"martin","password":"pw","email":"d@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMessage(t, w).Message, "already exists")
}

func TestTeacherClassHandlers(t *testing.T) {
	r := newTestRouter(t)
	teacherID, classID := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	w := do(r, http.MethodPost, fmt.Sprintf("/addEnseignantToClasse/%s/%s", teacherID, classID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	linkID := decodeMessage(t, w).ID
	require.NotEmpty(t, linkID)

	w = do(r, http.MethodPost, fmt.Sprintf("/addEnseignantToClasse/%s/%s", "bad", classID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/updateProfClass/"+linkID, `{"newClasse":"zzz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPut, "/updateProfClass/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, fmt.Sprintf("/removeEnseignantFromClasse/%s/%s", teacherID, classID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Teacher removed from class successfully", decodeMessage(t, w).Message)

	w = do(r, http.MethodDelete, fmt.Sprintf("/removeEnseignantFromClasse/%s/%s", teacherID, classID), "")
	assert.Equal(t, http.StatusOK, w.Code, "unlinking an absent pair succeeds")

	w = do(r, http.MethodDelete, "/removeEnseignantFromClasse/"+linkID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
