package service

import (
	"context"
	"strings"

	"sprint2/internal/model"
	"sprint2/internal/repository"
	"sprint2/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentService handles student (eleve) business logic
type StudentService struct {
	repo repository.IStudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(repo repository.IStudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// Create adds a student. Username and registration number must both be unused.
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.NumInscrit = strings.TrimSpace(req.NumInscrit)

	if err := util.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}
	classID, err := parseRef("userClass", req.UserClass)
	if err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.repo, "student", primitive.NilObjectID,
		bson.M{"username": req.Username},
		bson.M{"numInscrit": req.NumInscrit},
	); err != nil {
		return nil, err
	}

	etat := model.StatusActive
	if req.Etat.Set {
		etat = req.Etat.Value
	}

	ts := now()
	student := &model.Student{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		NumInscrit: req.NumInscrit,
		UserClass:  classID,
		Etat:       etat,
		Role:       model.RoleStudent,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, storeError("student", err)
	}
	return student, nil
}

// Update applies the supplied fields of req to the student id.
func (s *StudentService) Update(ctx context.Context, id string, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("student", err)
	}

	var clauses []bson.M
	if req.Username.Set {
		v, err := patchString("username", req.Username.Value, true)
		if err != nil {
			return nil, err
		}
		if v != student.Username {
			clauses = append(clauses, bson.M{"username": v})
		}
		student.Username = v
	}
	if req.Password.Set {
		if req.Password.Value == "" {
			return nil, validationError(errEmpty("password"))
		}
		student.Password = req.Password.Value
	}
	if req.Email.Set {
		v, err := patchString("email", req.Email.Value, true)
		if err != nil {
			return nil, err
		}
		student.Email = v
	}
	if req.NumInscrit.Set {
		v, err := patchString("numInscrit", req.NumInscrit.Value, true)
		if err != nil {
			return nil, err
		}
		if v != student.NumInscrit {
			clauses = append(clauses, bson.M{"numInscrit": v})
		}
		student.NumInscrit = v
	}
	if req.UserClass.Set {
		classID, err := parseRef("userClass", req.UserClass.Value)
		if err != nil {
			return nil, err
		}
		student.UserClass = classID
	}
	if req.Etat.Set {
		student.Etat = req.Etat.Value
	}

	if err := ensureUnique(ctx, s.repo, "student", student.ID, clauses...); err != nil {
		return nil, err
	}

	student.UpdatedAt = now()
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, storeError("student", err)
	}
	return student, nil
}

// Delete removes a student by ID
func (s *StudentService) Delete(ctx context.Context, id string) error {
	return storeError("student", s.repo.Delete(ctx, id))
}

// List returns all students
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	students, err := s.repo.Find(ctx, nil)
	return students, storeError("student", err)
}

// Get returns a student by ID
func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("student", err)
	}
	return student, nil
}
