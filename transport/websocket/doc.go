// Package websocket provides the WebSocket event feed of the fleet service.
//
// The websocket package implements:
//   - A hub-and-spoke broadcast of fleet events
//   - Optional per-ship filtering of the feed
//   - Connection lifecycle management (ping/pong, slow-client eviction)
//
// Architecture:
//
// A central Hub tracks all connections. Each client connection is handled by
// a dedicated pair of goroutines for reading and writing. Clients are read
// only to keep the connection alive; the feed itself is one-directional.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//
//	{"ship_id": "…", "event": "ship_moved", "data": { …ship… }}
//
// Events: ship_created, ship_updated, ship_moved, destination_changed,
// speed_changed, ship_deleted.
//
// Filtering:
//
// Clients connect with an optional ship ID query parameter (?ship=<id>).
// Filtered clients receive only events for that ship; clients connecting
// without a filter receive every fleet event.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// from a handler, after a successful mutation:
//	hub.BroadcastEvent(shipID, "ship_moved", updated)
package websocket
