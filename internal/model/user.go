package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles accepted by the generic users collection.
const (
	RoleAdmin   = "admin"
	RoleUser    = "utilisateur"
	RoleDefault = "autre_role_par_defaut"
)

// UserRoles lists the roles a User may hold.
var UserRoles = []string{RoleAdmin, RoleUser, RoleDefault}

// User is the generic account record of the users collection.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	Password   string             `bson:"password" json:"-"`
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"`
	UserClass  string             `bson:"userClass,omitempty" json:"userClass,omitempty"`
	NumInscrit string             `bson:"numInscrit,omitempty" json:"numInscrit,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) GetID() primitive.ObjectID   { return u.ID }
func (u *User) SetID(id primitive.ObjectID) { u.ID = id }
func (u *User) GetUsername() string         { return u.Username }
func (u *User) GetEmail() string            { return u.Email }
func (u *User) GetRole() string             { return u.Role }

// CreateUserRequest is the body of POST /addUser.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Role       string `json:"role"`
	UserClass  string `json:"userClass"`
	NumInscrit string `json:"numInscrit"`
}

// UpdateUserRequest is the body of PUT /updateUser/:id. Only supplied keys are applied.
type UpdateUserRequest struct {
	Username   Optional[string] `json:"username"`
	Password   Optional[string] `json:"password"`
	Email      Optional[string] `json:"email"`
	Role       Optional[string] `json:"role"`
	UserClass  Optional[string] `json:"userClass"`
	NumInscrit Optional[string] `json:"numInscrit"`
}
