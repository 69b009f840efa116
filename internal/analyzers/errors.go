package analyzers

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

// AnalysisService errors
const (
	codeErrorThresholdExceeded = "ANL_1001"

	codeInternalLocateFailed = "ANL_9000"
	codeInternalReadFailed   = "ANL_9001"
	codeInternalRenderFailed = "ANL_9002"
	codeInternalStoreFailed  = "ANL_9003"
)

// errErrorThresholdExceeded returns an error when too many lines of the log could not be parsed.
func errErrorThresholdExceeded(ratio, threshold float64) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeErrorThresholdExceeded,
		fmt.Sprintf("malformed line ratio %.3f exceeds threshold %.3f", ratio, threshold), nil)
}

func errInternalLocateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLocateFailed, fmt.Errorf("locateFailed: %w", cause))
}

func errInternalReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReadFailed, fmt.Errorf("readFailed: %w", cause))
}

func errInternalRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRenderFailed, fmt.Errorf("renderFailed: %w", cause))
}

// errInternalStoreFailed returns an error when a report store operation fails.
func errInternalStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
