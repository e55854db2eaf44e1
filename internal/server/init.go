package server

import (
	"context"
	"fmt"
	"time"

	"sprint2/internal/config"
	"sprint2/internal/handler"
	"sprint2/internal/repository"
	"sprint2/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Services groups the business services
type Services struct {
	User         *service.UserService
	Student      *service.StudentService
	Teacher      *service.TeacherService
	TeacherClass *service.TeacherClassService
}

// Handlers groups the HTTP handlers
type Handlers struct {
	User         *handler.UserHandler
	Student      *handler.StudentHandler
	Teacher      *handler.TeacherHandler
	TeacherClass *handler.TeacherClassHandler
	Health       *handler.HealthHandler
}

// InitRepositories opens the store selected by cfg.Store.Driver. The returned
// client is nil for the memory driver.
func InitRepositories(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, *mongo.Client, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return repository.NewMemoryRepositories(), nil, nil
	case config.DriverMongo, "":
		client, err := Connect(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoRepositories(client.Database(cfg.Mongo.Database)), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// EnsureIndexes installs the unique indexes within a bounded bootstrap window.
func EnsureIndexes(repos *repository.Repositories) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return repos.EnsureIndexes(ctx)
}

func InitServices(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *Services {
	return &Services{
		User:         service.NewUserService(repos.Users),
		Student:      service.NewStudentService(repos.Students),
		Teacher:      service.NewTeacherService(cfg, repos.Teachers, repos.TeacherClasses, logger),
		TeacherClass: service.NewTeacherClassService(repos.TeacherClasses),
	}
}

func InitHandlers(cfg *config.Config, s *Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		User:         handler.NewUserHandler(s.User, logger),
		Student:      handler.NewStudentHandler(s.Student, logger),
		Teacher:      handler.NewTeacherHandler(s.Teacher, logger),
		TeacherClass: handler.NewTeacherClassHandler(s.TeacherClass, logger),
		Health:       handler.NewHealthHandler(cfg.Registry.ServiceName),
	}
}
