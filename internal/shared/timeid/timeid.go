// Package timeid maps wall-clock time onto MongoDB ObjectIDs so records can use
// a single field as both primary key and timestamp. The 4-byte ObjectID prefix
// holds the Unix second count, which makes bytewise ID ordering consistent with
// time ordering at one-second granularity. Sub-second precision is discarded;
// two IDs encoding the same second share the same ordering prefix.
package timeid

import (
	"encoding/binary"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidTimestamp is returned when a time value is absent or unrepresentable.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ID is the timestamp-encoding identifier used as record primary key.
type ID = bson.ObjectID

// Encode returns the canonical ID for t: second count in the ordering prefix,
// all-zero suffix. Canonical IDs are deterministic, so they serve as range-scan
// bounds ("all records between X and Y" as a primary-key range).
func Encode(t time.Time) (ID, error) {
	if t.IsZero() {
		return bson.NilObjectID, ErrInvalidTimestamp
	}
	sec := t.Unix()
	if sec < 0 || sec > int64(^uint32(0)) {
		return bson.NilObjectID, ErrInvalidTimestamp
	}

	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(sec))
	return id, nil
}

// New returns a unique ID encoding t's second. The suffix is filled the way the
// driver fills generated ObjectIDs, so two records created in the same second get
// distinct primary keys while still sorting within that second: for any t,
// Encode(t) <= New(t) < Encode(t+1s).
func New(t time.Time) (ID, error) {
	if t.IsZero() {
		return bson.NilObjectID, ErrInvalidTimestamp
	}
	sec := t.Unix()
	if sec < 0 || sec > int64(^uint32(0)) {
		return bson.NilObjectID, ErrInvalidTimestamp
	}

	return bson.NewObjectIDFromTimestamp(t), nil
}

// Decode extracts the encoded time from id, in UTC. Inverse of Encode and New up
// to the sub-second precision lost when encoding.
func Decode(id ID) time.Time {
	sec := binary.BigEndian.Uint32(id[0:4])
	return time.Unix(int64(sec), 0).UTC()
}
