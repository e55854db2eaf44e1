package service

import (
	"context"
	"strings"

	"sprint2/internal/config"
	"sprint2/internal/model"
	"sprint2/internal/repository"
	"sprint2/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TeacherService handles teacher (enseignant) business logic
type TeacherService struct {
	repo   repository.ITeacherRepository
	links  repository.ITeacherClassRepository
	cfg    *config.Config
	logger *zap.Logger
}

// NewTeacherService creates a new teacher service. links is only touched when
// cfg.Store.CascadeTeacherLinks is on.
func NewTeacherService(cfg *config.Config, repo repository.ITeacherRepository, links repository.ITeacherClassRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		repo:   repo,
		links:  links,
		cfg:    cfg,
		logger: logger.Named("teachers"),
	}
}

// Create adds a teacher. Username and email must both be unused.
func (s *TeacherService) Create(ctx context.Context, req model.CreateTeacherRequest) (*model.Teacher, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}
	matieres, err := parseRefs("matieres", req.Matieres)
	if err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.repo, "teacher", primitive.NilObjectID,
		bson.M{"username": req.Username},
		bson.M{"email": req.Email},
	); err != nil {
		return nil, err
	}

	etat := model.StatusActive
	if req.Etat.Set {
		etat = req.Etat.Value
	}

	ts := now()
	teacher := &model.Teacher{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Matieres:  matieres,
		Etat:      etat,
		Role:      model.RoleTeacher,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, storeError("teacher", err)
	}
	return teacher, nil
}

// Update applies the supplied fields of req to the teacher id.
func (s *TeacherService) Update(ctx context.Context, id string, req model.UpdateTeacherRequest) (*model.Teacher, error) {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("teacher", err)
	}

	var clauses []bson.M
	if req.Username.Set {
		v, err := patchString("username", req.Username.Value, true)
		if err != nil {
			return nil, err
		}
		if v != teacher.Username {
			clauses = append(clauses, bson.M{"username": v})
		}
		teacher.Username = v
	}
	if req.Password.Set {
		if req.Password.Value == "" {
			return nil, validationError(errEmpty("password"))
		}
		teacher.Password = req.Password.Value
	}
	if req.Email.Set {
		v, err := patchString("email", req.Email.Value, true)
		if err != nil {
			return nil, err
		}
		if v != teacher.Email {
			clauses = append(clauses, bson.M{"email": v})
		}
		teacher.Email = v
	}
	if req.Matieres.Set {
		matieres, err := parseRefs("matieres", req.Matieres.Value)
		if err != nil {
			return nil, err
		}
		teacher.Matieres = matieres
	}
	if req.Etat.Set {
		teacher.Etat = req.Etat.Value
	}

	if err := ensureUnique(ctx, s.repo, "teacher", teacher.ID, clauses...); err != nil {
		return nil, err
	}

	teacher.UpdatedAt = now()
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, storeError("teacher", err)
	}
	return teacher, nil
}

// Delete removes a teacher by ID, and its class links when cascading is
// configured. A failed cascade is logged and leaves the links in place.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("teacher", err)
	}
	if !s.cfg.Store.CascadeTeacherLinks {
		return nil
	}

	teacherID, err := parseRef("teacher", id)
	if err != nil {
		return err
	}
	// The teacher is already gone; leftover links are reported, not returned.
	n, err := s.links.DeleteMany(ctx, bson.M{"enseignant": teacherID})
	if err != nil {
		s.logger.Error("failed to remove class links of deleted teacher", zap.String("teacher_id", id), zap.Error(err))
		return nil
	}
	s.logger.Info("removed class links of deleted teacher", zap.String("teacher_id", id), zap.Int64("links", n))
	return nil
}

// List returns all teachers
func (s *TeacherService) List(ctx context.Context) ([]*model.Teacher, error) {
	teachers, err := s.repo.Find(ctx, nil)
	return teachers, storeError("teacher", err)
}

// Get returns a teacher by ID
func (s *TeacherService) Get(ctx context.Context, id string) (*model.Teacher, error) {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("teacher", err)
	}
	return teacher, nil
}
