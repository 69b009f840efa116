package http

import (
	"net/http"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the status, size and service error of a response for the
// metrics and logging middleware.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// Outcome returns the status sent to the client, 200 when the handler wrote nothing,
// and the code of the service error behind a failed response.
func (w *appResponseWriter) Outcome() (int, string) {
	status := w.Status()
	if status == 0 {
		status = http.StatusOK
	}
	return status, w.ErrorCode()
}
