package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
)

func TestAppResponseWriter_Outcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		write        func(w *appResponseWriter)
		expectStatus int
		expectCode   string
	}{
		{
			name:         "nothing written",
			write:        func(w *appResponseWriter) {},
			expectStatus: http.StatusOK,
		},
		{
			name: "body only",
			write: func(w *appResponseWriter) {
				_, _ = w.Write([]byte("<html/>"))
			},
			expectStatus: http.StatusOK,
		},
		{
			name: "service error",
			write: func(w *appResponseWriter) {
				w.SetServiceError(svcerrors.NewNotFoundError("SRV_1001", "report not found", nil))
				w.WriteHeader(http.StatusNotFound)
			},
			expectStatus: http.StatusNotFound,
			expectCode:   "SRV_1001",
		},
		{
			name: "status kept after write",
			write: func(w *appResponseWriter) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("{}"))
			},
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
			tt.write(appWriter)

			status, code := appWriter.Outcome()
			assert.Equal(t, tt.expectStatus, status)
			assert.Equal(t, tt.expectCode, code)
		})
	}
}

func TestAppResponseWriter_SetServiceError(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Empty(t, appWriter.ErrorCode())

	appWriter.SetServiceError(svcerrors.NewInternalError("SRV_9000", nil))
	assert.Equal(t, "SRV_9000", appWriter.ErrorCode())

	appWriter.SetServiceError(nil)
	assert.Empty(t, appWriter.ErrorCode())
}

func TestAppResponseWriter_PassesThrough(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)

	appWriter.WriteHeader(http.StatusNotFound)
	_, _ = appWriter.Write([]byte("not found"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", rr.Body.String())
	assert.Equal(t, len("not found"), appWriter.BytesWritten())
}
