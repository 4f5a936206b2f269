package queries

import (
	"time"
)

// LaterFilter decides whether another user's latest event on a shared webstrate
// counts as having come later than the querying user's own last activity there.
type LaterFilter func(otherTimestamp, userTimestamp time.Time) bool

// CompatLaterFilter reproduces the reference monitor's comparison verbatim: the
// millisecond difference is divided by 60 and multiplied by 1000 before being
// compared against 5. That passes for any gap above 0.3ms, effectively
// "strictly later" at the identifier's one-second granularity, rather than the
// five minutes the surrounding naming suggests. Kept as the default so results
// stay comparable with historical data; see StrictLaterFilter for the other
// reading.
func CompatLaterFilter(otherTimestamp, userTimestamp time.Time) bool {
	minuteDifference := float64(otherTimestamp.Sub(userTimestamp).Milliseconds()) / 60 * 1000
	return minuteDifference > 5
}

// StrictLaterFilter keeps only events more than five minutes after the user's
// own last activity.
func StrictLaterFilter(otherTimestamp, userTimestamp time.Time) bool {
	return otherTimestamp.Sub(userTimestamp) > 5*time.Minute
}
