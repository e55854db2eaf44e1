package model

import "sprint2/pkg/generic"

// Role values fixed by the specialised collections.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Status values of the etat flag.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// Account is the field contract shared by users, students and teachers.
type Account interface {
	generic.Entity
	GetUsername() string
	GetEmail() string
	GetRole() string
}

var (
	_ Account = (*User)(nil)
	_ Account = (*Student)(nil)
	_ Account = (*Teacher)(nil)
)
