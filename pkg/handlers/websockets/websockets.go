package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/cash-agent-exchange/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler registers agent dashboard connections, on API Gateway or locally.
type Handler struct {
	connManager websockets.ConnectionManager
	hub         *websockets.Hub
}

// NewHandler creates a Handler. hub is only needed by ServeHTTP and may be nil on Lambda.
func NewHandler(connManager websockets.ConnectionManager, hub *websockets.Hub) *Handler {
	return &Handler{
		connManager: connManager,
		hub:         hub,
	}
}

// HandleConnect registers a connection for the agent named in the agent_id query parameter.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	agentID := request.QueryStringParameters["agent_id"]
	if agentID == "" {
		slog.Warn("connection rejected without agent_id", "connectionId", connectionID)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	slog.Info("Agent connected", "connectionId", connectionID, "agent_id", agentID)
	if err := h.connManager.AddConnection(ctx, connectionID, agentID); err != nil {
		slog.Error("failed to save connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect handles client disconnections.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Agent disconnected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connManager.RemoveConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to delete connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault logs frames sent by a dashboard; the feed is push only.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Debug("Received message", "connectionId", request.RequestContext.ConnectionID, "bytes", len(request.Body))
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades a local dashboard connection (GET /ws?agent_id=...) and
// keeps it attached to the hub until the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		http.Error(w, "agent_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	connectionID := uuid.New().String()
	slog.Info("Agent connected locally", "connectionId", connectionID, "agent_id", agentID)

	// The request context is cancelled once the handler returns, so cleanup runs detached from it.
	ctx := context.WithoutCancel(r.Context())
	if h.hub != nil {
		// Attached before registering so a publish never sees an unknown socket.
		h.hub.Attach(connectionID, conn)
		defer h.hub.Detach(connectionID)
	}
	if err := h.connManager.AddConnection(ctx, connectionID, agentID); err != nil {
		slog.Error("failed to save local connection ID", "error", err)
		return
	}

	defer func() {
		slog.Info("Agent disconnected locally", "connectionId", connectionID)
		if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to delete local connection ID", "error", err)
		}
	}()

	// Reads only detect the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "error", err)
			}
			break
		}
	}
}
