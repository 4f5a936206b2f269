package http

import (
	"fmt"

	"webstrate-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidQueryParam = "API_1000"
	codeInvalidUserID     = "API_1001"
)

// errInvalidQueryParam returns an error for a missing or unparseable query parameter.
func errInvalidQueryParam(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, fmt.Sprintf("invalid or missing parameter: %s", name), cause)
}

// errInvalidUserID returns an error for a userId that fails sanitization.
// The id ends up inside store filters, so anything outside the expected shape
// is rejected at the edge.
func errInvalidUserID() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidUserID, "invalid userId", nil)
}
