package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/chris/cash-agent-exchange/pkg/handlers/admin/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sessions := mocks.NewSessions(t)
		sessions.On("Count", mock.Anything).Return(3, nil)
		h := NewAdminHandler(sessions, false)
		h.now = func() time.Time { return h.started.Add(90 * time.Second) }
		rr := httptest.NewRecorder()

		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.Health
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, api.Health{Status: "ok", UptimeSeconds: 90, ActiveSessions: 3}, got)
	})

	t.Run("Store Unreachable", func(t *testing.T) {
		sessions := mocks.NewSessions(t)
		sessions.On("Count", mock.Anything).Return(0, errors.New("dial tcp: refused"))
		rr := httptest.NewRecorder()

		NewAdminHandler(sessions, false).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "degraded")
	})
}

func TestClearSessions(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		sessions := mocks.NewSessions(t)
		sessions.On("Clear", mock.Anything).Return(nil)
		rr := httptest.NewRecorder()

		NewAdminHandler(sessions, true).ClearSessions(rr, httptest.NewRequest(http.MethodPost, "/admin/sessions/clear", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Hidden In Production", func(t *testing.T) {
		sessions := mocks.NewSessions(t)
		rr := httptest.NewRecorder()

		NewAdminHandler(sessions, false).ClearSessions(rr, httptest.NewRequest(http.MethodPost, "/admin/sessions/clear", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		sessions := mocks.NewSessions(t)
		sessions.On("Clear", mock.Anything).Return(errors.New("boom"))
		rr := httptest.NewRecorder()

		NewAdminHandler(sessions, true).ClearSessions(rr, httptest.NewRequest(http.MethodPost, "/admin/sessions/clear", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
