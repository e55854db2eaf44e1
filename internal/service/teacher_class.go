package service

import (
	"context"
	"errors"

	"sprint2/internal/model"
	"sprint2/internal/repository"
	"sprint2/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
)

const linkEntity = "teacher-class link"

// TeacherClassService manages the links assigning teachers to classes.
// Neither reference is checked against its collection: classes live in
// another service and links outlive the records they point at.
type TeacherClassService struct {
	repo repository.ITeacherClassRepository
}

// NewTeacherClassService creates a new link service
func NewTeacherClassService(repo repository.ITeacherClassRepository) *TeacherClassService {
	return &TeacherClassService{repo: repo}
}

// Link records that teacherID teaches classID.
func (s *TeacherClassService) Link(ctx context.Context, teacherID, classID string) (*model.TeacherClass, error) {
	teacher, err := parseRef("teacher", teacherID)
	if err != nil {
		return nil, err
	}
	class, err := parseRef("class", classID)
	if err != nil {
		return nil, err
	}

	ts := now()
	link := &model.TeacherClass{
		Enseignant: teacher,
		Classe:     class,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, storeError(linkEntity, err)
	}
	return link, nil
}

// Unlink removes the link id.
func (s *TeacherClassService) Unlink(ctx context.Context, id string) error {
	return storeError(linkEntity, s.repo.Delete(ctx, id))
}

// UnlinkPair removes the first link between teacherID and classID. It reports
// whether a link was removed; finding none is not an error.
func (s *TeacherClassService) UnlinkPair(ctx context.Context, teacherID, classID string) (bool, error) {
	teacher, err := parseRef("teacher", teacherID)
	if err != nil {
		return false, err
	}
	class, err := parseRef("class", classID)
	if err != nil {
		return false, err
	}

	link, err := s.repo.FindOne(ctx, bson.M{"enseignant": teacher, "classe": class})
	if errors.Is(err, generic.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(linkEntity, err)
	}

	err = s.repo.Delete(ctx, link.ID.Hex())
	if errors.Is(err, generic.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(linkEntity, err)
	}
	return true, nil
}

// Update points the link id at new references; absent fields keep their value.
func (s *TeacherClassService) Update(ctx context.Context, id string, req model.UpdateTeacherClassRequest) (*model.TeacherClass, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(linkEntity, err)
	}

	if req.Enseignant.Set {
		teacher, err := parseRef("newEnseignant", req.Enseignant.Value)
		if err != nil {
			return nil, err
		}
		link.Enseignant = teacher
	}
	if req.Classe.Set {
		class, err := parseRef("newClasse", req.Classe.Value)
		if err != nil {
			return nil, err
		}
		link.Classe = class
	}

	link.UpdatedAt = now()
	if err := s.repo.Update(ctx, link); err != nil {
		return nil, storeError(linkEntity, err)
	}
	return link, nil
}

// List returns every link
func (s *TeacherClassService) List(ctx context.Context) ([]*model.TeacherClass, error) {
	links, err := s.repo.Find(ctx, nil)
	return links, storeError(linkEntity, err)
}

// Get returns a link by ID
func (s *TeacherClassService) Get(ctx context.Context, id string) (*model.TeacherClass, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(linkEntity, err)
	}
	return link, nil
}
