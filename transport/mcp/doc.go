// Package mcp provides the Model Context Protocol surface of the fleet service.
//
// The mcp package implements:
//   - An MCP server exposing every fleet operation as a tool
//   - A thin proxy that forwards each tool call to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_ships: List the whole fleet
//   - get_ship: Get one ship by ID
//   - create_ship: Create a ship (name, position, destination, optional speed)
//   - update_ship: Partial update of any mutable fields
//   - move_ship: Overwrite a ship's position
//   - set_destination: Overwrite a ship's destination
//   - set_speed: Set a new positive speed
//   - delete_ship: Remove a ship
//   - fleet_health: Service liveness and fleet size
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: the /mcp endpoint mounted by the main server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
