package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.watchers == nil {
		t.Error("Hub watchers map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	// Create a mock client
	client := &Client{
		hub:    hub,
		shipID: "test-ship",
		send:   make(chan []byte, 256),
	}

	// Register the client
	hub.registerClient(client)

	// Check if watch key was created
	if _, exists := hub.watchers["test-ship"]; !exists {
		t.Error("Watch key was not created")
	}

	// Check if client was added under its watch key
	if !hub.watchers["test-ship"][client] {
		t.Error("Client was not registered under its watch key")
	}

	// Check watcher count
	if len(hub.watchers["test-ship"]) != 1 {
		t.Errorf("Expected 1 watcher, got %d", len(hub.watchers["test-ship"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:    hub,
		shipID: "test-ship",
		send:   make(chan []byte, 256),
	}

	// Register then unregister
	hub.registerClient(client)
	hub.unregisterClient(client)

	// Check if watch key was cleaned up
	if _, exists := hub.watchers["test-ship"]; exists {
		t.Error("Watch key should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleWatchers(t *testing.T) {
	hub := NewHub()
	shipID := "multi-watcher-ship"

	// Create multiple clients watching the same ship
	client1 := &Client{
		hub:    hub,
		shipID: shipID,
		send:   make(chan []byte, 256),
	}
	client2 := &Client{
		hub:    hub,
		shipID: shipID,
		send:   make(chan []byte, 256),
	}

	// Register both clients
	hub.registerClient(client1)
	hub.registerClient(client2)

	// Check ship has 2 watchers
	if len(hub.watchers[shipID]) != 2 {
		t.Errorf("Expected 2 watchers, got %d", len(hub.watchers[shipID]))
	}

	// Unregister one client
	hub.unregisterClient(client1)

	// Watch key should still exist with 1 client
	if len(hub.watchers[shipID]) != 1 {
		t.Errorf("Expected 1 watcher remaining, got %d", len(hub.watchers[shipID]))
	}

	// Check the right client remains
	if !hub.watchers[shipID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToWatchers(t *testing.T) {
	hub := NewHub()
	shipID := "broadcast-test"

	// Create a test client
	client := &Client{
		hub:    hub,
		shipID: shipID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	hub.broadcastMessage(&Message{
		ShipID: shipID,
		Event:  "ship_moved",
		Data:   map[string]float64{"x": 5, "y": 3},
	})

	// Check if message was sent to client
	select {
	case data := <-client.send:
		var message Message
		err := json.Unmarshal(data, &message)
		if err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}

		if message.ShipID != shipID {
			t.Errorf("Expected shipID %s, got %s", shipID, message.ShipID)
		}

		if message.Event != "ship_moved" {
			t.Errorf("Expected event 'ship_moved', got %s", message.Event)
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastReachesFleetWideWatchers(t *testing.T) {
	hub := NewHub()

	// One client watching a specific ship, one watching the whole fleet
	shipWatcher := &Client{
		hub:    hub,
		shipID: "ship-1",
		send:   make(chan []byte, 256),
	}
	fleetWatcher := &Client{
		hub:    hub,
		shipID: fleetWide,
		send:   make(chan []byte, 256),
	}
	otherWatcher := &Client{
		hub:    hub,
		shipID: "ship-2",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(shipWatcher)
	hub.registerClient(fleetWatcher)
	hub.registerClient(otherWatcher)

	hub.broadcastMessage(&Message{
		ShipID: "ship-1",
		Event:  "speed_changed",
	})

	// Both the ship's watcher and the fleet-wide watcher receive the event
	for _, c := range []*Client{shipWatcher, fleetWatcher} {
		select {
		case <-c.send:
		case <-time.After(100 * time.Millisecond):
			t.Error("Watcher did not receive event within timeout")
		}
	}

	// A watcher of a different ship does not
	select {
	case <-otherWatcher.send:
		t.Error("Watcher of unrelated ship received event")
	default:
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	done := make(chan bool)

	// Start hub in goroutine
	go func() {
		for {
			select {
			case message := <-hub.broadcast:
				// Verify the broadcast message
				if message.ShipID != "event-test" {
					t.Errorf("Expected shipID 'event-test', got %s", message.ShipID)
				}
				if message.Event != "custom-event" {
					t.Errorf("Expected event 'custom-event', got %s", message.Event)
				}
				if message.Data != "test-data" {
					t.Errorf("Expected data 'test-data', got %v", message.Data)
				}
				done <- true
				return
			case <-time.After(100 * time.Millisecond):
				t.Error("No broadcast message received within timeout")
				done <- false
				return
			}
		}
	}()

	// Send broadcast event
	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	// Wait for verification
	<-done
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()

	// Start hub in background
	go hub.Run()

	// Create a test HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shipID := r.URL.Query().Get("ship")
		hub.ServeWS(w, r, shipID)
	}))
	defer server.Close()

	// Convert HTTP URL to WebSocket URL
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?ship=ws-test"

	// Connect to WebSocket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	// Check if client was registered
	if len(hub.watchers["ws-test"]) != 1 {
		t.Errorf("Expected 1 watcher, got %d", len(hub.watchers["ws-test"]))
	}

	// Close connection
	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	// Check if client was unregistered and watch key cleaned up
	if _, exists := hub.watchers["ws-test"]; exists {
		t.Error("Watch key should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()

	// Start hub
	go hub.Run()

	// Create a test HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shipID := r.URL.Query().Get("ship")
		hub.ServeWS(w, r, shipID)
	}))
	defer server.Close()

	// Convert HTTP URL to WebSocket URL
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?ship=msg-test"

	// Connect to WebSocket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give time for connection to establish
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastEvent("msg-test", "ship_moved", map[string]float64{"x": 10, "y": 15})

	// Read message from WebSocket
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	// Parse the message
	var message Message
	err = json.Unmarshal(messageData, &message)
	if err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	// Verify message content
	if message.ShipID != "msg-test" {
		t.Errorf("Expected shipID 'msg-test', got %s", message.ShipID)
	}

	if message.Event != "ship_moved" {
		t.Errorf("Expected event 'ship_moved', got %s", message.Event)
	}

	data, ok := message.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Unexpected data payload: %v", message.Data)
	}
	if data["x"].(float64) != 10 || data["y"].(float64) != 15 {
		t.Error("Coordinates not correctly received")
	}
}
