package queries

import (
	"fmt"

	"webstrate-analytics/internal/shared/svcerrors"
)

const (
	codeMissingInput     = "QRY_1000"
	codeInvalidTimestamp = "QRY_1001"

	codeInternalActivityStoreFailed    = "QRY_9000"
	codeInternalClientEventStoreFailed = "QRY_9001"
)

// errMissingInput returns an error when a required query parameter is absent.
// Rejected before any store access.
func errMissingInput(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMissingInput, msg, nil)
}

// errInvalidTimestamp returns an error when a query time cannot be encoded.
func errInvalidTimestamp(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTimestamp, "invalid timestamp", cause)
}

// errInternalActivityStoreFailed returns an error when an activity range scan fails.
func errInternalActivityStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalActivityStoreFailed, fmt.Errorf("activityStoreFailed: %w", cause))
}

// errInternalClientEventStoreFailed returns an error when a client event query fails.
func errInternalClientEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalClientEventStoreFailed, fmt.Errorf("clientEventStoreFailed: %w", cause))
}
