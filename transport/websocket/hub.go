package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
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
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// fleetWide is the watch key of clients that subscribed without a filter.
const fleetWide = ""

// Message is a single fleet event on the wire.
type Message struct {
	ShipID string      `json:"ship_id,omitempty"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	shipID string
}

// Hub maintains the set of active clients and broadcasts fleet events
type Hub struct {
	// Registered clients by watched ship ID; fleetWide holds unfiltered clients
	watchers map[string]map[*Client]bool

	// Outbound fleet events
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		watchers:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS upgrades the request and attaches the client to the hub. An empty
// shipID subscribes the client to the whole fleet.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, shipID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		shipID: shipID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastEvent queues a fleet event for delivery to clients watching the
// given ship and to every unfiltered client.
func (h *Hub) BroadcastEvent(shipID string, event string, data interface{}) {
	message := &Message{
		ShipID: shipID,
		Event:  event,
		Data:   data,
	}

	h.broadcast <- message
}

// registerClient adds a client under its watch key
func (h *Hub) registerClient(client *Client) {
	if h.watchers[client.shipID] == nil {
		h.watchers[client.shipID] = make(map[*Client]bool)
	}
	h.watchers[client.shipID][client] = true

	logrus.Debugf("Client registered for ship %q (watching: %d)",
		client.shipID, len(h.watchers[client.shipID]))
}

// unregisterClient removes a client from its watch key
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.watchers[client.shipID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty watch keys
			if len(clients) == 0 {
				delete(h.watchers, client.shipID)
			}

			logrus.Debugf("Client unregistered from ship %q (remaining: %d)",
				client.shipID, len(clients))
		}
	}
}

// broadcastMessage delivers a message to the ship's watchers and to every
// fleet-wide subscriber
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("Failed to marshal broadcast message: %v", err)
		return
	}

	h.deliver(h.watchers[message.ShipID], data)
	if message.ShipID != fleetWide {
		h.deliver(h.watchers[fleetWide], data)
	}
}

func (h *Hub) deliver(clients map[*Client]bool, data []byte) {
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
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
		// The feed is one-directional; incoming messages only keep the
		// connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Errorf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
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
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
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
