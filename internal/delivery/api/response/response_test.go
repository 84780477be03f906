package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "accounts/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSuccess_WritesRawBody(t *testing.T) {
	t.Parallel()

	c, rec := newContext()
	require.NoError(t, Success(c, http.StatusCreated, map[string]string{"name": "Ann"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"Ann"}`, rec.Body.String())
}

func TestMessage(t *testing.T) {
	t.Parallel()

	c, rec := newContext()
	require.NoError(t, Message(c, http.StatusOK, "User deleted"))
	assert.JSONEq(t, `{"message":"User deleted"}`, rec.Body.String())
}

func TestError_Shape(t *testing.T) {
	t.Parallel()

	c, rec := newContext()
	require.NoError(t, Error(c, http.StatusBadRequest, "BAD_INPUT", "Invalid input", map[string]string{"field": "email"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Invalid input", body["message"])
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "BAD_INPUT", errInfo["code"])
	assert.Equal(t, "Invalid input", errInfo["message"])
	assert.NotNil(t, errInfo["details"])
	assert.Equal(t, "req-1", body["meta"].(map[string]any)["request_id"])
}

func TestError_HidesDetails(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		c, rec := newContext()
		require.NoError(t, Error(c, status, "CODE", "msg", "secret detail"))

		errInfo := decode(t, rec)["error"].(map[string]any)
		_, present := errInfo["details"]
		assert.False(t, present, "status %d", status)
	}
}

func TestInternalServerError(t *testing.T) {
	t.Parallel()

	c, rec := newContext()
	require.NoError(t, InternalServerError(c, "INTERNAL_ERROR", "Server error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Server error", body["message"])
	assert.Equal(t, "INTERNAL_ERROR", body["error"].(map[string]any)["code"])
}
