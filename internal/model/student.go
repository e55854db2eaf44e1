package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a record of the eleves collection.
type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	Password   string             `bson:"password" json:"-"`
	Email      string             `bson:"email" json:"email"`
	NumInscrit string             `bson:"numInscrit" json:"numInscrit"`
	UserClass  primitive.ObjectID `bson:"userClass" json:"userClass"`
	Etat       int                `bson:"etat" json:"etat"`
	Role       string             `bson:"role" json:"role"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (s *Student) GetID() primitive.ObjectID   { return s.ID }
func (s *Student) SetID(id primitive.ObjectID) { s.ID = id }
func (s *Student) GetUsername() string         { return s.Username }
func (s *Student) GetEmail() string            { return s.Email }
func (s *Student) GetRole() string             { return s.Role }

// CreateStudentRequest is the body of POST /addEleve.
type CreateStudentRequest struct {
	Username   string        `json:"username" binding:"required"`
	Password   string        `json:"password" binding:"required"`
	Email      string        `json:"email" binding:"required"`
	NumInscrit string        `json:"numInscrit" binding:"required"`
	UserClass  string        `json:"userClass" binding:"required"`
	Etat       Optional[int] `json:"etat"`
}

// UpdateStudentRequest is the body of PUT /updateEleve/:id.
type UpdateStudentRequest struct {
	Username   Optional[string] `json:"newUsername"`
	Password   Optional[string] `json:"newPassword"`
	Email      Optional[string] `json:"newEmail"`
	NumInscrit Optional[string] `json:"newNumInscrit"`
	UserClass  Optional[string] `json:"newUserClass"`
	Etat       Optional[int]    `json:"newEtat"`
}
