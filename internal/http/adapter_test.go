package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler wraps a function to implement AppHttpHandler interface for testing
type testHandler struct {
	handleFunc func(w http.ResponseWriter, r *http.Request) error
}

func (h *testHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return h.handleFunc(w, r)
}

func TestErrorHandlingAdapter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedCategory string
		expectedCode     string
		expectedMessage  string
	}{
		{
			name:             "invalid report date",
			err:              errInvalidReportDate("2017-06-30", nil),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "invalid_argument",
			expectedCode:     "SRV_1000",
			expectedMessage:  `invalid report date "2017-06-30": want YYYYMMDD`,
		},
		{
			name:             "report not found",
			err:              errReportNotFound("report 2017.06.30", nil),
			expectedStatus:   http.StatusNotFound,
			expectedCategory: "not_found",
			expectedCode:     "SRV_1001",
			expectedMessage:  "report 2017.06.30 not found",
		},
		{
			name:             "store failure",
			err:              errInternalReportStoreFailed(assert.AnError),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SRV_9000",
			expectedMessage:  "internal error",
		},
		{
			name:             "plain error",
			err:              assert.AnError,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SYS_9001",
			expectedMessage:  "internal error",
		},
		{
			name:             "wrapped service error",
			err:              svcerrors.NewResourceConflictError("TEST_4090", "conflict", nil),
			expectedStatus:   http.StatusConflict,
			expectedCategory: "resource_conflict",
			expectedCode:     "TEST_4090",
			expectedMessage:  "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := errorHandlingAdapter(&testHandler{
				handleFunc: func(w http.ResponseWriter, r *http.Request) error {
					return tt.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/reports/x", nil)
			reqID := "test-request-id-" + tt.name
			req.Header.Set(headerRequestID, reqID)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, contentTypeJSON, rr.Header().Get(headerContentType))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, ErrorResponse{
				RequestID:        reqID,
				ErrorCategory:    tt.expectedCategory,
				ErrorCode:        tt.expectedCode,
				ErrorDescription: tt.expectedMessage,
			}, errorResponse)
		})
	}
}

func TestErrorHandlingAdapter_RecordsErrorOnAppWriter(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			return errReportNotFound("asset x.js", nil)
		},
	})

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	handler.ServeHTTP(appWriter, httptest.NewRequest(http.MethodGet, "/reports/x.js", nil))

	status, code := appWriter.Outcome()
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "SRV_1001", code)
}

func TestErrorHandlingAdapter_NoError(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			return writeJSON(w, http.StatusOK, []string{"ok"})
		},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["ok"]`, rr.Body.String())
}
