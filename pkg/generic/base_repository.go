package generic

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository Interface
type BaseRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	Find(ctx context.Context, filter bson.M) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	EnsureIndexes(ctx context.Context, indexes []UniqueIndex) error
}

// MongoBaseRepository Implementation
type MongoBaseRepository[T Entity] struct {
	Collection *mongo.Collection
}

var _ BaseRepository[Entity] = (*MongoBaseRepository[Entity])(nil)

func NewBaseRepository[T Entity](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

// 1. Create
func (r *MongoBaseRepository[T]) Create(ctx context.Context, entity T) error {
	entity.SetID(primitive.NewObjectID())
	_, err := r.Collection.InsertOne(ctx, entity)
	return mongoError(err)
}

// 2. GetByID
func (r *MongoBaseRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var entity T
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.FindOne(ctx, bson.M{"_id": objID})
}

// FindOne returns the first document matching filter.
func (r *MongoBaseRepository[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var entity T
	err := r.Collection.FindOne(ctx, nonNil(filter)).Decode(&entity)
	return entity, mongoError(err)
}

// Find returns every document matching filter in natural order.
func (r *MongoBaseRepository[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := r.Collection.Find(ctx, nonNil(filter))
	if err != nil {
		return nil, mongoError(err)
	}
	defer cursor.Close(ctx)

	entities := []T{}
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, mongoError(err)
	}
	return entities, nil
}

func (r *MongoBaseRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := r.Collection.CountDocuments(ctx, nonNil(filter))
	return n, mongoError(err)
}

// 3. Update (Full Replace)
func (r *MongoBaseRepository[T]) Update(ctx context.Context, entity T) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity)
	if err != nil {
		return mongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// 4. Delete
func (r *MongoBaseRepository[T]) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return mongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every document matching filter and reports how many went.
func (r *MongoBaseRepository[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, nonNil(filter))
	if err != nil {
		return 0, mongoError(err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique indexes backing the collection's invariants.
func (r *MongoBaseRepository[T]) EnsureIndexes(ctx context.Context, indexes []UniqueIndex) error {
	if len(indexes) == 0 {
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		keys := bson.D{}
		partial := bson.M{}
		for _, field := range idx.Fields {
			keys = append(keys, bson.E{Key: field, Value: 1})
			partial[field] = bson.M{"$exists": true}
		}

		opts := options.Index().SetUnique(true).SetName(idx.Name)
		if idx.Partial {
			opts.SetPartialFilterExpression(partial)
		}
		models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
	}

	if _, err := r.Collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", r.Collection.Name(), err)
	}
	return nil
}

func nonNil(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

// mongoError folds driver errors into the package sentinels.
func mongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
