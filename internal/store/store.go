// Package store is the document store every handler talks to. One Store is
// built at process start and injected; implementations must be safe for
// concurrent use.
package store

import (
	"context" // Request contexts
	"errors"  // Error values
	"fmt"     // Error wrapping

	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // ObjectID
)

// Collection names
const (
	Parts    = "parts"
	Orders   = "order"
	Users    = "user"
	Reviews  = "review"
	Payments = "payment"
	Profiles = "profile"
)

var (
	// ErrNotFound is returned by FindOne when no document matches.
	ErrNotFound = errors.New("store: document not found")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("store: invalid identifier")
)

// InsertResult acknowledges an insert.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult acknowledges an update or upsert.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult acknowledges a delete. Deleting nothing is not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Store is the set of document operations the API needs.
//
// Filters are equality matches on top-level fields. out for Find is a
// pointer to a slice, for FindOne a pointer to a single document. set is
// applied as a field-wise merge ($set), never as a replacement.
type Store interface {
	Find(ctx context.Context, collection string, filter bson.M, out any) error
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	InsertOne(ctx context.Context, collection string, doc any) (InsertResult, error)
	UpdateOne(ctx context.Context, collection string, filter bson.M, set any, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (DeleteResult, error)
}

// ParseID converts a hex path identifier into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// ByID is the filter selecting a single document by identifier.
func ByID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}
