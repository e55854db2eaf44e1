package generic

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryDoc struct {
	raw    []byte
	fields bson.M
}

// MemoryRepository keeps bson-encoded documents in process. It understands the
// subset of filter syntax the services use: field equality, $or, $ne and $exists.
type MemoryRepository[T Entity] struct {
	mu      sync.RWMutex
	docs    map[primitive.ObjectID]memoryDoc
	order   []primitive.ObjectID
	indexes []UniqueIndex
}

var _ BaseRepository[Entity] = (*MemoryRepository[Entity])(nil)

func NewMemoryRepository[T Entity]() *MemoryRepository[T] {
	return &MemoryRepository[T]{docs: make(map[primitive.ObjectID]memoryDoc)}
}

func (r *MemoryRepository[T]) Create(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entity.SetID(primitive.NewObjectID())
	doc, err := encode(entity)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(entity.GetID(), doc.fields); err != nil {
		return err
	}
	r.docs[entity.GetID()] = doc
	r.order = append(r.order, entity.GetID())
	return nil
}

func (r *MemoryRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var entity T
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.FindOne(ctx, bson.M{"_id": objID})
}

func (r *MemoryRepository[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var entity T
	if err := ctx.Err(); err != nil {
		return entity, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		doc := r.docs[id]
		if matches(doc.fields, filter) {
			return decode[T](doc.raw)
		}
	}
	return entity, ErrNotFound
}

func (r *MemoryRepository[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	entities := []T{}
	for _, id := range r.order {
		doc := r.docs[id]
		if !matches(doc.fields, filter) {
			continue
		}
		entity, err := decode[T](doc.raw)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r *MemoryRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, id := range r.order {
		if matches(r.docs[id].fields, filter) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := encode(entity)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[entity.GetID()]; !ok {
		return ErrNotFound
	}
	if err := r.checkUnique(entity.GetID(), doc.fields); err != nil {
		return err
	}
	r.docs[entity.GetID()] = doc
	return nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[objID]; !ok {
		return ErrNotFound
	}
	r.remove(objID)
	return nil
}

func (r *MemoryRepository[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var doomed []primitive.ObjectID
	for _, id := range r.order {
		if matches(r.docs[id].fields, filter) {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		r.remove(id)
	}
	return int64(len(doomed)), nil
}

// EnsureIndexes records the constraints; they are enforced on every write.
func (r *MemoryRepository[T]) EnsureIndexes(_ context.Context, indexes []UniqueIndex) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes = append(r.indexes, indexes...)
	return nil
}

// remove must be called with mu held.
func (r *MemoryRepository[T]) remove(id primitive.ObjectID) {
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// checkUnique must be called with mu held.
func (r *MemoryRepository[T]) checkUnique(self primitive.ObjectID, fields bson.M) error {
	for _, idx := range r.indexes {
		if idx.Partial && !hasAll(fields, idx.Fields) {
			continue
		}
		for id, other := range r.docs {
			if id == self {
				continue
			}
			if idx.Partial && !hasAll(other.fields, idx.Fields) {
				continue
			}
			if sameKey(fields, other.fields, idx.Fields) {
				return fmt.Errorf("%w: index %s", ErrDuplicate, idx.Name)
			}
		}
	}
	return nil
}

func encode(entity any) (memoryDoc, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return memoryDoc{}, fmt.Errorf("encode document: %w", err)
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return memoryDoc{}, fmt.Errorf("encode document: %w", err)
	}
	return memoryDoc{raw: raw, fields: fields}, nil
}

func decode[T Entity](raw []byte) (T, error) {
	var entity T
	if err := bson.Unmarshal(raw, &entity); err != nil {
		return entity, fmt.Errorf("decode document: %w", err)
	}
	return entity, nil
}

func hasAll(fields bson.M, names []string) bool {
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return false
		}
	}
	return true
}

func sameKey(a, b bson.M, names []string) bool {
	for _, name := range names {
		if !sameValue(a[name], b[name]) {
			return false
		}
	}
	return true
}

func matches(fields bson.M, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			if !matchesAny(fields, want) {
				return false
			}
			continue
		}

		got, present := fields[key]
		if ops, ok := want.(bson.M); ok {
			if !matchesOperators(got, present, ops) {
				return false
			}
			continue
		}
		if !present || !sameValue(got, want) {
			return false
		}
	}
	return true
}

func matchesAny(fields bson.M, clauses any) bool {
	var list []bson.M
	switch v := clauses.(type) {
	case []bson.M:
		list = v
	case bson.A:
		for _, c := range v {
			if m, ok := c.(bson.M); ok {
				list = append(list, m)
			}
		}
	}
	for _, clause := range list {
		if matches(fields, clause) {
			return true
		}
	}
	return false
}

func matchesOperators(got any, present bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$ne":
			if present && sameValue(got, arg) {
				return false
			}
		case "$exists":
			want, _ := arg.(bool)
			if present != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sameValue compares two values by their bson encoding, so int and int32 or
// a decoded ObjectID and a fresh one compare the way the server would.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, da, errA := bson.MarshalValue(a)
	tb, db, errB := bson.MarshalValue(b)
	return errA == nil && errB == nil && ta == tb && bytes.Equal(da, db)
}
