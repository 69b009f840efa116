package http

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

// Report server errors
const (
	codeInvalidReportDate = "SRV_1000"
	codeReportNotFound    = "SRV_1001"

	codeInternalReportStoreFailed = "SRV_9000"
)

// errInvalidReportDate returns an error when the date path segment is not a valid YYYYMMDD date.
func errInvalidReportDate(raw string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportDate, fmt.Sprintf("invalid report date %q: want YYYYMMDD", raw), cause)
}

// errReportNotFound returns an error when no report or asset is stored under the requested name.
func errReportNotFound(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("%s not found", name), cause)
}

// errInternalReportStoreFailed returns an error when reading from the report store fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
