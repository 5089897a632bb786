package store

import (
	"context" // Request contexts
	"fmt"     // Error wrapping
	"reflect" // Slice decoding
	"sync"    // Locking

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // ObjectID
)

// MemoryStore is an in-process Store with the same observable semantics as
// MongoStore for equality filters. Documents are kept in insertion order and
// round-tripped through BSON so callers never share memory with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]bson.M)}
}

func (s *MemoryStore) Find(ctx context.Context, collection string, filter bson.M, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Pointer || dst.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: find %s: out must be a pointer to a slice, got %T", collection, out)
	}
	f, err := normalize(filter)
	if err != nil {
		return fmt.Errorf("store: find %s: %w", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sliceType := dst.Elem().Type()
	result := reflect.MakeSlice(sliceType, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		if !matches(doc, f) {
			continue
		}
		elem := reflect.New(sliceType.Elem())
		if err := decode(doc, elem.Interface()); err != nil {
			return fmt.Errorf("store: decode %s: %w", collection, err)
		}
		result = reflect.Append(result, elem.Elem())
	}
	dst.Elem().Set(result)
	return nil
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := normalize(filter)
	if err != nil {
		return fmt.Errorf("store: find one %s: %w", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			if err := decode(doc, out); err != nil {
				return fmt.Errorf("store: decode %s: %w", collection, err)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) InsertOne(ctx context.Context, collection string, doc any) (InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return InsertResult{}, err
	}
	m, err := normalize(doc)
	if err != nil {
		return InsertResult{}, fmt.Errorf("store: insert %s: %w", collection, err)
	}
	switch id := m["_id"].(type) {
	case nil:
		m["_id"] = primitive.NewObjectID()
	case primitive.ObjectID:
		if id.IsZero() {
			m["_id"] = primitive.NewObjectID()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.collections[collection] {
		if reflect.DeepEqual(existing["_id"], m["_id"]) {
			return InsertResult{}, fmt.Errorf("store: insert %s: duplicate _id %v", collection, m["_id"])
		}
	}
	s.collections[collection] = append(s.collections[collection], m)
	return InsertResult{Acknowledged: true, InsertedID: m["_id"]}, nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, collection string, filter bson.M, set any, upsert bool) (UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return UpdateResult{}, err
	}
	f, err := normalize(filter)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("store: update %s: %w", collection, err)
	}
	fields, err := normalize(set)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("store: update %s: %w", collection, err)
	}
	delete(fields, "_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if !matches(doc, f) {
			continue
		}
		res := UpdateResult{Acknowledged: true, MatchedCount: 1}
		changed := false
		for k, v := range fields {
			if cur, ok := doc[k]; !ok || !reflect.DeepEqual(cur, v) {
				doc[k] = v
				changed = true
			}
		}
		if changed {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	if !upsert {
		return UpdateResult{Acknowledged: true}, nil
	}
	doc := bson.M{}
	for k, v := range f {
		doc[k] = v
	}
	for k, v := range fields {
		doc[k] = v
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	s.collections[collection] = append(s.collections[collection], doc)
	return UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: doc["_id"]}, nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return DeleteResult{}, err
	}
	f, err := normalize(filter)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("store: delete %s: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, f) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return DeleteResult{Acknowledged: true}, nil
}

// normalize round-trips v through BSON so filters, updates and stored
// documents compare with the same Go types.
func normalize(v any) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	if m, ok := v.(bson.M); ok && m == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
