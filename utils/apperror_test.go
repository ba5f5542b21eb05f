package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("reserve: %w", Upstream("master service unreachable", cause))

	assert.Equal(t, KindUpstreamUnavailable, KindOf(wrapped))
	assert.Equal(t, "master service unreachable", MessageOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, "internal server error", MessageOf(cause))
	assert.False(t, IsKind(nil, KindInternal))
	assert.True(t, IsKind(Conflict("taken"), KindConflict))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindInvalidInput:        http.StatusBadRequest,
		KindUnauthorized:        http.StatusUnauthorized,
		KindNotFound:            http.StatusNotFound,
		KindConflict:            http.StatusConflict,
		KindUpstreamUnavailable: http.StatusInternalServerError,
		KindConfirmation:        http.StatusInternalServerError,
		KindInternal:            http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind), kind)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedule/1/2024-01-01", nil)

	RespondError(c, NotFound("master not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "master not found", body.Error)
	assert.Equal(t, KindNotFound, body.Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("unexpected") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), string(KindInternal))
}
