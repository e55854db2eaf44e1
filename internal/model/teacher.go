package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Teacher is a record of the enseignants collection.
type Teacher struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username  string               `bson:"username" json:"username"`
	Password  string               `bson:"password" json:"-"`
	Email     string               `bson:"email" json:"email"`
	Matieres  []primitive.ObjectID `bson:"matieres" json:"matieres"`
	Etat      int                  `bson:"etat" json:"etat"`
	Role      string               `bson:"role" json:"role"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (t *Teacher) GetID() primitive.ObjectID   { return t.ID }
func (t *Teacher) SetID(id primitive.ObjectID) { t.ID = id }
func (t *Teacher) GetUsername() string         { return t.Username }
func (t *Teacher) GetEmail() string            { return t.Email }
func (t *Teacher) GetRole() string             { return t.Role }

// CreateTeacherRequest is the body of POST /addEnseignant.
type CreateTeacherRequest struct {
	Username string        `json:"username" binding:"required"`
	Password string        `json:"password" binding:"required"`
	Email    string        `json:"email" binding:"required"`
	Matieres []string      `json:"matieres"`
	Etat     Optional[int] `json:"etat"`
}

// UpdateTeacherRequest is the body of PUT /updateEnseignant/:id.
type UpdateTeacherRequest struct {
	Username Optional[string]   `json:"newUsername"`
	Password Optional[string]   `json:"newPassword"`
	Email    Optional[string]   `json:"newEmail"`
	Matieres Optional[[]string] `json:"newMatieres"`
	Etat     Optional[int]      `json:"newEtat"`
}
