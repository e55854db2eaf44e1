package service

import (
	"context"
	"testing"

	"sprint2/internal/config"
	"sprint2/internal/model"
	"sprint2/internal/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const classHex = "64b7f0c2a1b2c3d4e5f60718"

type fixture struct {
	repos    *repository.Repositories
	users    *UserService
	students *StudentService
	teachers *TeacherService
	links    *TeacherClassService
}

func newFixture(t *testing.T, cascade bool) *fixture {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	require.NoError(t, repos.EnsureIndexes(context.Background()))

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, CascadeTeacherLinks: cascade}}
	return &fixture{
		repos:    repos,
		users:    NewUserService(repos.Users),
		students: NewStudentService(repos.Students),
		teachers: NewTeacherService(cfg, repos.Teachers, repos.TeacherClasses, zap.NewNop()),
		links:    NewTeacherClassService(repos.TeacherClasses),
	}
}

func aliceStudent() model.CreateStudentRequest {
	return model.CreateStudentRequest{
		Username:   "alice",
		Password:   "p",
		Email:      "a@x.com",
		NumInscrit: "123",
		UserClass:  classHex,
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}
