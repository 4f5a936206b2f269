package models

import (
	"webstrate-analytics/internal/shared/timeid"
)

// UserCounts holds one user's activity counters for a single flush interval.
type UserCounts struct {
	Signal int64 `bson:"signal" json:"signal"`
	Dom    int64 `bson:"dom" json:"dom"`
}

// Total is the combined activity score used by ranking queries.
func (c UserCounts) Total() int64 {
	return c.Signal + c.Dom
}

// ActivityRecord is the persisted per-webstrate summary of one flush interval.
// The ID encodes the flush time and is the record's only timestamp field.
// Records are created by a flush and never updated or deleted afterwards.
type ActivityRecord struct {
	ID          timeid.ID             `bson:"_id" json:"id"`
	WebstrateID string                `bson:"webstrateId" json:"webstrateId"`
	Users       map[string]UserCounts `bson:"users" json:"users"`
}
