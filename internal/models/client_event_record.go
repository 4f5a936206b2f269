package models

import (
	"webstrate-analytics/internal/shared/timeid"
)

// ClientEventRecord is a persisted join/part transition. Unlike activity
// counters these are written immediately on ingestion, one record per event.
// The ID encodes the event time and is the record's only timestamp field.
type ClientEventRecord struct {
	ID          timeid.ID `bson:"_id" json:"id"`
	Kind        EventKind `bson:"type" json:"type"`
	WebstrateID string    `bson:"webstrateId" json:"webstrateId"`
	UserID      string    `bson:"userId" json:"userId"`
}
