package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"workforce/shared/failure"
	"workforce/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	t.Run("failure keeps its code and message", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, failure.NotFound("lodging not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, map[string]any{"error": "lodging not found"}, decode(t, rec))
	})

	t.Run("wrapping context stays out of the body", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, fmt.Errorf("failed to create booking: %w", failure.NotFound("referenced resource not found")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"error": "referenced resource not found"}, decode(t, rec))
	})

	t.Run("internal error message is hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"error": "internal server error"}, decode(t, rec))
	})
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "1"}}, decode(t, rec))
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusOK, "OK")

	assert.Equal(t, map[string]any{"message": "OK"}, decode(t, rec))
}

func TestWithNoContent(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithNoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestWithUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithUnauthorized(rec, failure.CouldNotValidateCredentials)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}
