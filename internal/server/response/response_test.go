package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]int{"showing": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode(t, w)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"showing": float64(3)}, resp.Data)
}

func TestFail(t *testing.T) {
	resp := Fail(CodeBadRequest, "bad offset", "offset must be >= 0")
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeBadRequest, resp.Error.Code)
	assert.Equal(t, "offset must be >= 0", resp.Error.Details)
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NewNotFoundError("port", "atlantis"), http.StatusNotFound, CodeNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", errors.NewNotFoundError("record", "x")), http.StatusNotFound, CodeNotFound},
		{"validation", errors.NewValidationError("offset", -1, "must be >= 0"), http.StatusBadRequest, CodeBadRequest},
		{"unknown category", errors.NewUnknownCategoryError("forms", "pirates"), http.StatusBadRequest, CodeUnknownCategory},
		{"upstream", errors.NewAPIError("weather", 503, "down"), http.StatusBadGateway, CodeUpstream},
		{"config", errors.NewConfigError("conditions", "refresh is disabled", nil), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, errors.New("database password is hunter2"))

	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowed(w, http.MethodDelete)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "DELETE")
}
