package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoCollection = "activity_logs"

// mongoDoc is the persisted shape: one document per user, entries as
// 2-element arrays of nullable datetimes, matching the JSON wire format.
type mongoDoc struct {
	UserID  string         `bson:"_id"`
	Entries [][]*time.Time `bson:"entries"`
}

// MongoStore implements Store on a MongoDB collection. Activity logs are
// document-shaped, which makes Mongo a natural archive backend for them.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates an activity store over the given database, using the
// activity_logs collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(defaultMongoCollection)}
}

// Fetch returns the user's log, or ErrNoLog.
func (ms *MongoStore) Fetch(ctx context.Context, userID uuid.UUID) (Log, error) {
	var doc mongoDoc
	err := ms.coll.FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoLog
		}
		return nil, fmt.Errorf("activity: mongo fetch: %w", err)
	}

	log := make(Log, 0, len(doc.Entries))
	for _, pair := range doc.Entries {
		var e Entry
		if len(pair) > 0 {
			e.Start = pair[0]
		}
		if len(pair) > 1 {
			e.End = pair[1]
		}
		log = append(log, e)
	}
	return log, nil
}

// Save persists the user's log, creating the document if needed.
func (ms *MongoStore) Save(ctx context.Context, userID uuid.UUID, log Log) error {
	entries := make([][]*time.Time, 0, len(log))
	for _, e := range log {
		entries = append(entries, []*time.Time{e.Start, e.End})
	}

	_, err := ms.coll.ReplaceOne(ctx,
		bson.M{"_id": userID.String()},
		mongoDoc{UserID: userID.String(), Entries: entries},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("activity: mongo save: %w", err)
	}
	return nil
}
