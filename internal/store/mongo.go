package store

import (
	"context" // Request contexts
	"errors"  // Error values
	"fmt"     // Error wrapping

	"go.mongodb.org/mongo-driver/bson"          // BSON documents
	"go.mongodb.org/mongo-driver/mongo"         // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options" // Query options
)

// MongoStore implements Store on a single shared mongo database handle.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps db. The client behind it is owned by the caller.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, out any) error {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("store: find %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: find one %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc any) (InsertResult, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return InsertResult{}, fmt.Errorf("store: insert %s: %w", collection, err)
	}
	return InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection string, filter bson.M, set any, upsert bool) (UpdateResult, error) {
	opts := options.Update().SetUpsert(upsert)
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("store: update %s: %w", collection, err)
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (DeleteResult, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("store: delete %s: %w", collection, err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
