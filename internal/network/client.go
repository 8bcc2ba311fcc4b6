package network

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/engine"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Minimum interval between viewer actions from one connection.
	actionCooldown = 10 * time.Second
)

// Client represents an active WebSocket connection.
type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	send           chan []byte
	lastActionTime time.Time
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// ViewerAction represents an incoming command from the frontend.
type ViewerAction struct {
	Type    string          `json:"type"` // "TRIGGER_EVENT"
	Payload json.RawMessage `json:"payload"`
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("WebSocket read error: %v", err)
				metrics.Get().RecordWSError()
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var action ViewerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse ViewerAction from WebSocket: %v", err)
			continue
		}

		c.handleViewerAction(action)
	}
}

func (c *Client) handleViewerAction(action ViewerAction) {
	// Rate limiting check
	if time.Since(c.lastActionTime) < actionCooldown {
		c.hub.logger.Warn("Rate limit exceeded for viewer action %s", action.Type)
		return
	}
	c.lastActionTime = time.Now()

	switch action.Type {
	case "TRIGGER_EVENT":
		c.handleTriggerEvent(action.Payload)
	default:
		c.hub.logger.Warn("Unknown ViewerAction type: %s", action.Type)
	}
}

func (c *Client) handleTriggerEvent(rawPayload []byte) {
	var parsed struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(rawPayload, &parsed); err != nil {
		c.hub.logger.Warn("Failed to parse trigger payload: %v", err)
		return
	}

	kind, ok := engine.ParseEventKind(parsed.Kind)
	if !ok {
		c.hub.logger.Warn("Unknown event kind requested: %s", parsed.Kind)
		return
	}

	// Runs the full event sequence; keep it off the read pump.
	go func() {
		if err := c.hub.trigger.TriggerEvent(context.Background(), kind); err != nil {
			c.hub.logger.Warn("Viewer-triggered %s event rejected: %v", kind, err)
		}
	}()
	c.hub.logger.Event("VIEWER_ACTION", "", "Requested "+parsed.Kind+" event")
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
