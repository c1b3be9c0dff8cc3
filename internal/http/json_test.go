package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/contacts-api/internal/errors"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))

		var dst payload
		ok := DecodeJSON(w, r, &dst)
		assert.True(t, ok)
		assert.Equal(t, "ok", dst.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))

		var dst payload
		ok := DecodeJSON(w, r, &dst)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "invalid_json", body["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

		var dst payload
		ok := DecodeJSON(w, r, &dst)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, w.Body.String())
}

func TestWriteError_IncludesField(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "validation",
		Err:     errors.New("Email is required."),
		Field:   "email",
	})

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body["error"])
	assert.Equal(t, "Email is required.", body["message"])
	assert.Equal(t, "email", body["field"])
}

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFound("Contact not found."), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Conflict("Account already exists."), http.StatusConflict, "conflict"},
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "validation"},
		{"unauthorized", apperrors.Unauthorized("Could not validate credentials."), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.Forbidden("Not enough permissions."), http.StatusForbidden, "forbidden"},
		{"internal", apperrors.Internal("boom"), http.StatusInternalServerError, "internal"},
		{"timeout", &apperrors.AppError{Code: apperrors.ErrCodeTimeout, Message: "deadline"}, http.StatusGatewayTimeout, "timeout"},
		{"canceled", &apperrors.AppError{Code: apperrors.ErrCodeCanceled, Message: "canceled"}, 499, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteAppError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestWriteAppError_OpaqueForUnknownErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, errors.New("pq: connection refused to 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestWriteAppError_CauseStaysOutOfResponse(t *testing.T) {
	w := httptest.NewRecorder()
	wrapped := apperrors.Wrap(errors.New("dial tcp: i/o timeout"), apperrors.ErrCodeInternal, "fetch profile")
	WriteAppError(w, wrapped)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "i/o timeout")
	assert.Contains(t, w.Body.String(), "fetch profile")
}
