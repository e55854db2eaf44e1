package repository

import (
	"context"
	"fmt"

	"sprint2/internal/model"
	"sprint2/pkg/generic"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names.
const (
	UsersCollection          = "users"
	StudentsCollection       = "eleves"
	TeachersCollection       = "enseignants"
	TeacherClassesCollection = "prof_classes"
)

// IUserRepository defines user persistence
type IUserRepository = generic.BaseRepository[*model.User]

// IStudentRepository defines student persistence
type IStudentRepository = generic.BaseRepository[*model.Student]

// ITeacherRepository defines teacher persistence
type ITeacherRepository = generic.BaseRepository[*model.Teacher]

// ITeacherClassRepository defines teacher-to-class link persistence
type ITeacherClassRepository = generic.BaseRepository[*model.TeacherClass]

// Unique indexes are the authoritative uniqueness check; the services only
// pre-check so they can answer with a readable message.
var (
	UserIndexes = []generic.UniqueIndex{
		{Name: "users_username_unique", Fields: []string{"username"}},
		{Name: "users_numInscrit_unique", Fields: []string{"numInscrit"}, Partial: true},
	}
	StudentIndexes = []generic.UniqueIndex{
		{Name: "eleves_username_unique", Fields: []string{"username"}},
		{Name: "eleves_numInscrit_unique", Fields: []string{"numInscrit"}},
	}
	TeacherIndexes = []generic.UniqueIndex{
		{Name: "enseignants_username_unique", Fields: []string{"username"}},
		{Name: "enseignants_email_unique", Fields: []string{"email"}},
	}
)

// Repositories groups one repository per collection.
type Repositories struct {
	Users          IUserRepository
	Students       IStudentRepository
	Teachers       ITeacherRepository
	TeacherClasses ITeacherClassRepository
}

// NewMongoRepositories binds every repository to its collection in db.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:          generic.NewBaseRepository[*model.User](db.Collection(UsersCollection)),
		Students:       generic.NewBaseRepository[*model.Student](db.Collection(StudentsCollection)),
		Teachers:       generic.NewBaseRepository[*model.Teacher](db.Collection(TeachersCollection)),
		TeacherClasses: generic.NewBaseRepository[*model.TeacherClass](db.Collection(TeacherClassesCollection)),
	}
}

// NewMemoryRepositories returns process-local repositories.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:          generic.NewMemoryRepository[*model.User](),
		Students:       generic.NewMemoryRepository[*model.Student](),
		Teachers:       generic.NewMemoryRepository[*model.Teacher](),
		TeacherClasses: generic.NewMemoryRepository[*model.TeacherClass](),
	}
}

// EnsureIndexes installs the unique indexes of every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	if err := r.Users.EnsureIndexes(ctx, UserIndexes); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := r.Students.EnsureIndexes(ctx, StudentIndexes); err != nil {
		return fmt.Errorf("eleves: %w", err)
	}
	if err := r.Teachers.EnsureIndexes(ctx, TeacherIndexes); err != nil {
		return fmt.Errorf("enseignants: %w", err)
	}
	return nil
}
