package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sprint2/pkg/generic"
	"sprint2/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrValidation marks a request missing a required field or carrying a malformed one.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID marks an identifier that is not an ObjectID.
	ErrInvalidID = generic.ErrInvalidID
	// ErrDuplicate marks a uniqueness violation.
	ErrDuplicate = errors.New("already exists")
	// ErrNotFound marks an identifier that does not resolve.
	ErrNotFound = errors.New("not found")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// storeError translates repository sentinels into service errors for entity.
func storeError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, generic.ErrNotFound):
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	case errors.Is(err, generic.ErrDuplicate):
		return fmt.Errorf("%s %w", entity, ErrDuplicate)
	case errors.Is(err, generic.ErrInvalidID):
		return err
	default:
		return fmt.Errorf("%s store: %w", entity, err)
	}
}

// ensureUnique fails with ErrDuplicate when a record other than except matches any clause.
func ensureUnique[T generic.Entity](ctx context.Context, repo generic.BaseRepository[T], entity string, except primitive.ObjectID, clauses ...bson.M) error {
	if len(clauses) == 0 {
		return nil
	}
	filter := bson.M{"$or": clauses}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}

	_, err := repo.FindOne(ctx, filter)
	switch {
	case err == nil:
		return fmt.Errorf("%s %w", entity, ErrDuplicate)
	case errors.Is(err, generic.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check %s uniqueness: %w", entity, err)
	}
}

func parseRef(name, hex string) (primitive.ObjectID, error) {
	id, err := util.ParseObjectID(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s %q", ErrInvalidID, name, hex)
	}
	return id, nil
}

func parseRefs(name string, hexes []string) ([]primitive.ObjectID, error) {
	ids, err := util.ParseObjectIDs(hexes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidID, name, err)
	}
	return ids, nil
}

// patchString trims a supplied value and rejects blanks for required fields.
func patchString(name, value string, required bool) (string, error) {
	value = strings.TrimSpace(value)
	if required && value == "" {
		return "", validationError(errEmpty(name))
	}
	return value, nil
}

func errEmpty(name string) error {
	return fmt.Errorf("%s cannot be empty", name)
}

// now is truncated to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
