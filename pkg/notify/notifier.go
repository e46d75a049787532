package notify

import (
	"encoding/json"
	"log/slog"

	"omninote-api/websocket"
)

// Notifier defines a minimal interface for pushing change events to the
// connected client.
type Notifier interface {
	Publish(event interface{})
}

// WSNotifier implements Notifier using a WebSocket Hub.
type WSNotifier struct {
	Hub *websocket.Hub
}

// Publish serializes the event as JSON and broadcasts it to all connections.
func (n *WSNotifier) Publish(event interface{}) {
	if n == nil || n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal change event", "err", err)
		return
	}
	n.Hub.Broadcast(payload)
}
