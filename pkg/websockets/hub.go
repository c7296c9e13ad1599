package websockets

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/gorilla/websocket"
)

// frameWriter is the part of a socket the hub writes to.
type frameWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// Hub stands in for API Gateway when the server runs locally: it holds the
// open sockets and answers PostToConnection the same way, including a
// GoneException for connections it no longer knows.
type Hub struct {
	mu    sync.Mutex
	conns map[string]frameWriter
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]frameWriter)}
}

var _ PostAPI = (*Hub)(nil)

// Attach registers a socket under a connection ID.
func (h *Hub) Attach(connectionID string, conn *websocket.Conn) {
	h.attach(connectionID, conn)
}

func (h *Hub) attach(connectionID string, w frameWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connectionID] = w
}

// Detach forgets a connection.
func (h *Hub) Detach(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// PostToConnection writes one text frame. Writes are serialized since a
// gorilla connection supports a single concurrent writer.
func (h *Hub) PostToConnection(_ context.Context, params *apigatewaymanagementapi.PostToConnectionInput, _ ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := aws.ToString(params.ConnectionId)
	conn, ok := h.conns[id]
	if !ok {
		return nil, &apigwtypes.GoneException{Message: aws.String("connection " + id + " is gone")}
	}
	if err := conn.WriteMessage(websocket.TextMessage, params.Data); err != nil {
		delete(h.conns, id)
		return nil, &apigwtypes.GoneException{Message: aws.String(err.Error())}
	}
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}
