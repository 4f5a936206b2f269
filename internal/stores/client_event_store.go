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

// ClientEventStore persists and queries individual join/part records. The
// latest-per-webstrate lookups run as aggregation pipelines in the store; time
// windows are expressed as exclusive primary-key bounds.
//
//go:generate mockgen -source=client_event_store.go -destination=./mocks/client_event_store_mock.go -package=mocks
type ClientEventStore interface {
	// Insert writes a single join/part record immediately.
	Insert(ctx context.Context, record *models.ClientEventRecord) error
	// FindInRange returns events on the given webstrates with
	// lower < id < upper (both bounds exclusive), in id order.
	FindInRange(ctx context.Context, webstrateIDs []string, lower, upper timeid.ID) ([]*models.ClientEventRecord, error)
	// LatestByUser returns, per webstrate the user has events on, the user's
	// single most recent event.
	LatestByUser(ctx context.Context, userID string) ([]*models.ClientEventRecord, error)
	// LatestByOthers returns, per given webstrate, the single most recent event
	// by any user other than userID.
	LatestByOthers(ctx context.Context, webstrateIDs []string, userID string) ([]*models.ClientEventRecord, error)
	// DistinctUsersInRange returns the distinct userIds with an event on the
	// webstrate and lower < id < upper. An empty window yields an empty slice.
	DistinctUsersInRange(ctx context.Context, webstrateID string, lower, upper timeid.ID) ([]string, error)
}

type clientEventStore struct {
	coll *mongo.Collection
}

func NewClientEventStore(storage *mongostorages.MongoStorage) ClientEventStore {
	return &clientEventStore{coll: storage.Collection(mongostorages.CollClients)}
}

func (s *clientEventStore) Insert(ctx context.Context, record *models.ClientEventRecord) error {
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert client event: %w", err)
	}
	return nil
}

func (s *clientEventStore) FindInRange(ctx context.Context, webstrateIDs []string, lower, upper timeid.ID) ([]*models.ClientEventRecord, error) {
	filter := bson.D{
		{Key: "webstrateId", Value: bson.D{{Key: "$in", Value: webstrateIDs}}},
		{Key: "_id", Value: bson.D{
			{Key: "$gt", Value: lower},
			{Key: "$lt", Value: upper},
		}},
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find client events: %w", err)
	}

	var records []*models.ClientEventRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode client events: %w", err)
	}
	return records, nil
}

func (s *clientEventStore) LatestByUser(ctx context.Context, userID string) ([]*models.ClientEventRecord, error) {
	match := bson.D{{Key: "userId", Value: userID}}
	records, err := s.latestPerWebstrate(ctx, match)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.UserID = userID
	}
	return records, nil
}

func (s *clientEventStore) LatestByOthers(ctx context.Context, webstrateIDs []string, userID string) ([]*models.ClientEventRecord, error) {
	match := bson.D{
		{Key: "webstrateId", Value: bson.D{{Key: "$in", Value: webstrateIDs}}},
		{Key: "userId", Value: bson.D{{Key: "$ne", Value: userID}}},
	}
	return s.latestPerWebstrate(ctx, match)
}

// latestPerWebstrate reduces matching events to one record per webstrate, the
// one with the highest id. Sorting by webstrateId then id descending makes the
// group stage's $first pick the most recent event of each group.
func (s *clientEventStore) latestPerWebstrate(ctx context.Context, match bson.D) ([]*models.ClientEventRecord, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{
			{Key: "webstrateId", Value: 1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$webstrateId"},
			{Key: "originalId", Value: bson.D{{Key: "$first", Value: "$_id"}}},
			{Key: "type", Value: bson.D{{Key: "$first", Value: "$type"}}},
			{Key: "userId", Value: bson.D{{Key: "$first", Value: "$userId"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$originalId"},
			{Key: "webstrateId", Value: "$_id"},
			{Key: "type", Value: 1},
			{Key: "userId", Value: 1},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate latest client events: %w", err)
	}

	var records []*models.ClientEventRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode latest client events: %w", err)
	}
	return records, nil
}

func (s *clientEventStore) DistinctUsersInRange(ctx context.Context, webstrateID string, lower, upper timeid.ID) ([]string, error) {
	filter := bson.D{
		{Key: "webstrateId", Value: webstrateID},
		{Key: "_id", Value: bson.D{
			{Key: "$gt", Value: lower},
			{Key: "$lt", Value: upper},
		}},
	}

	var userIDs []string
	if err := s.coll.Distinct(ctx, "userId", filter).Decode(&userIDs); err != nil {
		return nil, fmt.Errorf("failed to list distinct users: %w", err)
	}
	return userIDs, nil
}
