package aggregators

import (
	"fmt"

	"webstrate-analytics/internal/shared/svcerrors"
)

const (
	codeInternalActivityStoreFailed    = "AGG_9000"
	codeInternalClientEventStoreFailed = "AGG_9001"
	codeInternalFlushTimestampFailed   = "AGG_9002"
	codeInternalEventTimestampFailed   = "AGG_9003"
)

// errInternalActivityStoreFailed returns an error when the batched flush insert fails.
func errInternalActivityStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalActivityStoreFailed, fmt.Errorf("activityStoreFailed: %w", cause))
}

// errInternalClientEventStoreFailed returns an error when a client event insert fails.
func errInternalClientEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalClientEventStoreFailed, fmt.Errorf("clientEventStoreFailed: %w", cause))
}

// errInternalFlushTimestampFailed returns an error when the flush time cannot be encoded.
func errInternalFlushTimestampFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalFlushTimestampFailed, fmt.Errorf("flushTimestampFailed: %w", cause))
}

// errInternalEventTimestampFailed returns an error when an event time cannot be encoded.
func errInternalEventTimestampFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventTimestampFailed, fmt.Errorf("eventTimestampFailed: %w", cause))
}
