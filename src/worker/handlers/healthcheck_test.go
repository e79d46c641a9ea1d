package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salesboard/src/worker/handlers"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	t.Run("GET answers alive", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handlers.Healthcheck(rr, httptest.NewRequest(http.MethodGet, "/alive", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Im alive!", rr.Body.String())
	})

	t.Run("other methods are rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handlers.Healthcheck(rr, httptest.NewRequest(http.MethodPost, "/alive", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Equal(t, "Method not available: POST", rr.Body.String())
	})
}
