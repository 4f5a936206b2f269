package stores

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"webstrate-analytics/internal/models"
	"webstrate-analytics/internal/shared/mongostorages"
	"webstrate-analytics/internal/shared/timeid"
)

// ActivityStore persists and scans per-interval activity aggregate records.
// Records are append-only; the identifier doubles as the timestamp, so every
// time-based lookup is a primary-key range scan.
//
//go:generate mockgen -source=activity_store.go -destination=./mocks/activity_store_mock.go -package=mocks
type ActivityStore interface {
	// InsertMany writes one flush interval's records in a single batched insert.
	InsertMany(ctx context.Context, records []*models.ActivityRecord) error
	// FindSince returns records with id >= lower, in id order.
	FindSince(ctx context.Context, lower timeid.ID) ([]*models.ActivityRecord, error)
	// FindRangeForUser returns records with lower <= id < upper whose users map
	// contains userID, in id order.
	FindRangeForUser(ctx context.Context, lower, upper timeid.ID, userID string) ([]*models.ActivityRecord, error)
}

type activityStore struct {
	coll *mongo.Collection
}

func NewActivityStore(storage *mongostorages.MongoStorage) ActivityStore {
	return &activityStore{coll: storage.Collection(mongostorages.CollActivities)}
}

func (s *activityStore) InsertMany(ctx context.Context, records []*models.ActivityRecord) error {
	docs := make([]any, 0, len(records))
	for _, record := range records {
		docs = append(docs, record)
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert activity records: %w", err)
	}
	return nil
}

func (s *activityStore) FindSince(ctx context.Context, lower timeid.ID) ([]*models.ActivityRecord, error) {
	filter := bson.D{
		{Key: "_id", Value: bson.D{{Key: "$gte", Value: lower}}},
	}
	return s.find(ctx, filter)
}

func (s *activityStore) FindRangeForUser(ctx context.Context, lower, upper timeid.ID, userID string) ([]*models.ActivityRecord, error) {
	filter := bson.D{
		{Key: "_id", Value: bson.D{
			{Key: "$gte", Value: lower},
			{Key: "$lt", Value: upper},
		}},
		{Key: "users." + userID, Value: bson.D{{Key: "$exists", Value: true}}},
	}
	return s.find(ctx, filter)
}

func (s *activityStore) find(ctx context.Context, filter bson.D) ([]*models.ActivityRecord, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find activity records: %w", err)
	}

	var records []*models.ActivityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activity records: %w", err)
	}
	return records, nil
}
