package websockets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/cash-agent-exchange/pkg/storage/memory"
	"github.com/chris/cash-agent-exchange/pkg/websockets"
	wsmocks "github.com/chris/cash-agent-exchange/pkg/websockets/mocks"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func wsRequest(connectionID string, query map[string]string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		RequestContext:        events.APIGatewayWebsocketProxyRequestContext{ConnectionID: connectionID},
		QueryStringParameters: query,
	}
}

func TestHandleConnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		conns := wsmocks.NewConnectionManager(t)
		conns.On("AddConnection", mock.Anything, "conn-1", "AG001").Return(nil)

		resp, err := NewHandler(conns, nil).HandleConnect(context.Background(), wsRequest("conn-1", map[string]string{"agent_id": "AG001"}))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing Agent", func(t *testing.T) {
		resp, err := NewHandler(wsmocks.NewConnectionManager(t), nil).HandleConnect(context.Background(), wsRequest("conn-1", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Storage Error", func(t *testing.T) {
		conns := wsmocks.NewConnectionManager(t)
		conns.On("AddConnection", mock.Anything, "conn-1", "AG001").Return(errors.New("boom"))

		resp, err := NewHandler(conns, nil).HandleConnect(context.Background(), wsRequest("conn-1", map[string]string{"agent_id": "AG001"}))

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandleDisconnect(t *testing.T) {
	conns := wsmocks.NewConnectionManager(t)
	conns.On("RemoveConnection", mock.Anything, "conn-1").Return(nil)

	resp, err := NewHandler(conns, nil).HandleDisconnect(context.Background(), wsRequest("conn-1", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeHTTP(t *testing.T) {
	t.Run("Feed Reaches Local Dashboard", func(t *testing.T) {
		store := memory.New()
		hub := websockets.NewHub()
		server := httptest.NewServer(NewHandler(store, hub))
		defer server.Close()

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?agent_id=AG001"
		client, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer client.Close()

		require.Eventually(t, func() bool {
			ids, _ := store.GetAgentConnections(context.Background(), "AG001")
			return len(ids) == 1
		}, 2*time.Second, 10*time.Millisecond)

		publisher := websockets.NewPublisher(store, store, hub)
		msg := websockets.Message{Type: websockets.MessageTypeAgreementUpdate, Payload: websockets.AgreementUpdatePayload{ExchangeCode: "BTC-ABC123"}}
		require.NoError(t, publisher.Publish(context.Background(), "AG001", msg))

		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, frame, err := client.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(frame), "BTC-ABC123")
	})

	t.Run("Missing Agent", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewHandler(memory.New(), websockets.NewHub()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
