package events

import (
	"webstrate-analytics/internal/models"
)

// PlatformEvent is one activity occurrence as delivered by the collaboration
// platform relay: an edit operation ("dom"), a presence signal ("signal"), or a
// join/part transition. Events arrive in relay order with no deduplication.
//
// Example JSON (relay wire shape):
//
//	{ "ga": "dom", "webstrateId": "frontpage", "userId": "github:1234" }
type PlatformEvent struct {
	Kind        models.EventKind `json:"ga"`
	WebstrateID string           `json:"webstrateId"`
	UserID      string           `json:"userId"`
}

// Malformed reports whether the event lacks the identifiers needed to attribute
// it. Malformed events are dropped without surfacing an error so one bad event
// cannot disrupt the ingestion stream.
func (e PlatformEvent) Malformed() bool {
	return e.WebstrateID == "" || e.UserID == ""
}
