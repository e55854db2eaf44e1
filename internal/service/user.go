package service

import (
	"context"
	"slices"
	"strings"

	"sprint2/internal/model"
	"sprint2/internal/repository"
	"sprint2/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles the generic users collection
type UserService struct {
	repo repository.IUserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repository.IUserRepository) *UserService {
	return &UserService{repo: repo}
}

// NormalizeRole returns role when it is an accepted user role and the standard role otherwise.
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if slices.Contains(model.UserRoles, role) {
		return role
	}
	return model.RoleUser
}

// Create adds a user after checking username and registration number are free.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.NumInscrit = strings.TrimSpace(req.NumInscrit)

	if err := util.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	clauses := []bson.M{{"username": req.Username}}
	if req.NumInscrit != "" {
		clauses = append(clauses, bson.M{"numInscrit": req.NumInscrit})
	}
	if err := ensureUnique(ctx, s.repo, "user", primitive.NilObjectID, clauses...); err != nil {
		return nil, err
	}

	ts := now()
	user := &model.User{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Role:       NormalizeRole(req.Role),
		UserClass:  strings.TrimSpace(req.UserClass),
		NumInscrit: req.NumInscrit,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}

// Update applies the supplied fields of req to the user id.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}

	var clauses []bson.M
	if req.Username.Set {
		v, err := patchString("username", req.Username.Value, true)
		if err != nil {
			return nil, err
		}
		if v != user.Username {
			clauses = append(clauses, bson.M{"username": v})
		}
		user.Username = v
	}
	if req.Password.Set {
		if req.Password.Value == "" {
			return nil, validationError(errEmpty("password"))
		}
		user.Password = req.Password.Value
	}
	if req.Email.Set {
		v, err := patchString("email", req.Email.Value, true)
		if err != nil {
			return nil, err
		}
		user.Email = v
	}
	if req.Role.Set {
		user.Role = NormalizeRole(req.Role.Value)
	}
	if req.UserClass.Set {
		user.UserClass = strings.TrimSpace(req.UserClass.Value)
	}
	if req.NumInscrit.Set {
		v := strings.TrimSpace(req.NumInscrit.Value)
		if v != "" && v != user.NumInscrit {
			clauses = append(clauses, bson.M{"numInscrit": v})
		}
		user.NumInscrit = v
	}

	if err := ensureUnique(ctx, s.repo, "user", user.ID, clauses...); err != nil {
		return nil, err
	}

	user.UpdatedAt = now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}

// Delete removes a user by ID
func (s *UserService) Delete(ctx context.Context, id string) error {
	return storeError("user", s.repo.Delete(ctx, id))
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.Find(ctx, nil)
	return users, storeError("user", err)
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("user", err)
	}
	return user, nil
}
