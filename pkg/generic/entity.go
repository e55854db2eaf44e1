package generic

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entity is an interface that all your models must implement
type Entity interface {
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
}

// UniqueIndex describes a uniqueness constraint over one or more document fields.
// A Partial index only applies to documents in which every field is present.
type UniqueIndex struct {
	Name    string
	Fields  []string
	Partial bool
}
