package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeacherClass assigns a teacher to a class. Several links may share a teacher
// or a class, and nothing prevents two links for the same pair.
type TeacherClass struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Enseignant primitive.ObjectID `bson:"enseignant" json:"enseignant"`
	Classe     primitive.ObjectID `bson:"classe" json:"classe"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (tc *TeacherClass) GetID() primitive.ObjectID   { return tc.ID }
func (tc *TeacherClass) SetID(id primitive.ObjectID) { tc.ID = id }

// UpdateTeacherClassRequest is the body of PUT /updateProfClass/:id.
type UpdateTeacherClassRequest struct {
	Enseignant Optional[string] `json:"newEnseignant"`
	Classe     Optional[string] `json:"newClasse"`
}
