package queries

import (
	"time"

	"webstrate-analytics/internal/models"
)

// HistoryEntry is an activity record decorated with the timestamp decoded from
// its identifier.
type HistoryEntry struct {
	models.ActivityRecord
	Timestamp time.Time `json:"timestamp"`
}

// MonthData maps calendar day of month -> webstrateId -> summed activity score
// for the webstrates that survive the month ranking cutoff.
type MonthData map[int]map[string]int64

// ClientEventEntry is a client event record decorated with its decoded timestamp.
type ClientEventEntry struct {
	models.ClientEventRecord
	Timestamp time.Time `json:"timestamp"`
}

// WebstrateActivities groups client events per webstrate, ordered by identifier.
type WebstrateActivities map[string][]*ClientEventEntry

// UserActivityEntry is the querying user's most recent client event on one
// webstrate, with the other users seen near it.
type UserActivityEntry struct {
	WebstrateID string    `json:"webstrateId"`
	Timestamp   time.Time `json:"timestamp"`
	// OtherUsers are the distinct other userIds with a client event on the
	// webstrate within three hours either side of Timestamp.
	OtherUsers []string `json:"otherUsers"`
}

// WebstrateActivityEntry is the most recent client event by any other user on a
// webstrate the querying user was active on.
type WebstrateActivityEntry struct {
	WebstrateID string    `json:"webstrateId"`
	UserID      string    `json:"userId"`
	Timestamp   time.Time `json:"timestamp"`
	// UserTimestamp is the querying user's own last activity on the webstrate.
	UserTimestamp time.Time `json:"userTimestamp"`
}

// RecentUserActivity is the result of the recent-activity correlation: the
// user's own trail (userActivity) and who was active on those webstrates after
// them (webstrateActivity), both sorted by timestamp descending.
type RecentUserActivity struct {
	UserActivity      []*UserActivityEntry      `json:"userActivity"`
	WebstrateActivity []*WebstrateActivityEntry `json:"webstrateActivity"`
}
