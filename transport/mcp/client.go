package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harbormaster/fleet/fleet/service"
	"github.com/harbormaster/fleet/fleet/ship"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Fleet Ship Management",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Fleet Ship Management - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Ships carry a name, a 2D position, a 2D destination, and a cruising speed
(always > 0, default 1.0).

AVAILABLE TOOLS:
- list_ships: List the whole fleet
- get_ship: Get one ship by ID
- create_ship: Create a ship (name, position, destination, optional speed)
- update_ship: Partial update of any mutable fields
- move_ship: Overwrite a ship's position
- set_destination: Overwrite a ship's destination
- set_speed: Set a new positive speed
- delete_ship: Remove a ship
- fleet_health: Service liveness and fleet size`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Fleet overview
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_ships",
		Description: "List all ships in the fleet",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListShips)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_ship",
		Description: "Get details of a specific ship",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID to retrieve",
				},
			},
			Required: []string{"ship_id"},
		},
	}, c.handleGetShip)

	// Lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_ship",
		Description: "Create a new ship with a name, position, destination, and optional speed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Ship name (must not be empty)",
				},
				"position_x": map[string]interface{}{
					"type":        "number",
					"description": "Initial position X",
				},
				"position_y": map[string]interface{}{
					"type":        "number",
					"description": "Initial position Y",
				},
				"destination_x": map[string]interface{}{
					"type":        "number",
					"description": "Destination X",
				},
				"destination_y": map[string]interface{}{
					"type":        "number",
					"description": "Destination Y",
				},
				"speed": map[string]interface{}{
					"type":        "number",
					"description": "Cruising speed, must be > 0 (default 1.0)",
				},
			},
			Required: []string{"name", "position_x", "position_y", "destination_x", "destination_y"},
		},
	}, c.handleCreateShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "update_ship",
		Description: "Update any subset of a ship's mutable fields",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "New name (must not be empty)",
				},
				"position_x": map[string]interface{}{
					"type":        "number",
					"description": "New position X",
				},
				"position_y": map[string]interface{}{
					"type":        "number",
					"description": "New position Y",
				},
				"destination_x": map[string]interface{}{
					"type":        "number",
					"description": "New destination X",
				},
				"destination_y": map[string]interface{}{
					"type":        "number",
					"description": "New destination Y",
				},
				"speed": map[string]interface{}{
					"type":        "number",
					"description": "New speed, must be > 0",
				},
			},
			Required: []string{"ship_id"},
		},
	}, c.handleUpdateShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_ship",
		Description: "Delete a ship from the fleet",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID",
				},
			},
			Required: []string{"ship_id"},
		},
	}, c.handleDeleteShip)

	// Field-level actions
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_ship",
		Description: "Move a ship to a new position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "New X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "New Y coordinate",
				},
			},
			Required: []string{"ship_id", "x", "y"},
		},
	}, c.handleMoveShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_destination",
		Description: "Set a new destination for a ship",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Destination X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Destination Y coordinate",
				},
			},
			Required: []string{"ship_id", "x", "y"},
		},
	}, c.handleSetDestination)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_speed",
		Description: "Set a new cruising speed for a ship (must be > 0)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ship_id": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID",
				},
				"speed": map[string]interface{}{
					"type":        "number",
					"description": "New speed, must be > 0",
				},
			},
			Required: []string{"ship_id", "speed"},
		},
	}, c.handleSetSpeed)

	// Service health
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fleet_health",
		Description: "Check API health and fleet size",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleHealth)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API and decodes the response
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListShips(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var ships []*ship.Ship
	err := c.apiCall("GET", "/ships", nil, &ships)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShipList(ships)), nil
}

func (c *Client) handleGetShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	var sh ship.Ship
	err := c.apiCall("GET", fmt.Sprintf("/ships/%s", shipID), nil, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShip(&sh)), nil
}

func (c *Client) handleCreateShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{
		"name":          args["name"],
		"position_x":    args["position_x"],
		"position_y":    args["position_y"],
		"destination_x": args["destination_x"],
		"destination_y": args["destination_y"],
	}
	if speed, ok := args["speed"].(float64); ok {
		body["speed"] = speed
	}

	var sh ship.Ship
	err := c.apiCall("POST", "/ships", body, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Ship %q created with ID %s\n\n%s", sh.Name, sh.ID, formatShip(&sh))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleUpdateShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	body := map[string]interface{}{}
	for _, field := range []string{"name", "position_x", "position_y", "destination_x", "destination_y", "speed"} {
		if v, ok := args[field]; ok {
			body[field] = v
		}
	}

	var sh ship.Ship
	err := c.apiCall("PUT", fmt.Sprintf("/ships/%s", shipID), body, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Ship %q updated\n\n%s", sh.Name, formatShip(&sh))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeleteShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	var resp map[string]string
	err := c.apiCall("DELETE", fmt.Sprintf("/ships/%s", shipID), nil, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(resp["message"]), nil
}

func (c *Client) handleMoveShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	body := map[string]interface{}{
		"x": args["x"],
		"y": args["y"],
	}

	var sh ship.Ship
	err := c.apiCall("POST", fmt.Sprintf("/ships/%s/move", shipID), body, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Ship %q moved to (%g, %g)", sh.Name, sh.PositionX, sh.PositionY)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSetDestination(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	body := map[string]interface{}{
		"x": args["x"],
		"y": args["y"],
	}

	var sh ship.Ship
	err := c.apiCall("POST", fmt.Sprintf("/ships/%s/destination", shipID), body, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Ship %q destination set to (%g, %g)", sh.Name, sh.DestinationX, sh.DestinationY)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSetSpeed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	shipID, _ := args["ship_id"].(string)

	body := map[string]interface{}{
		"speed": args["speed"],
	}

	var sh ship.Ship
	err := c.apiCall("POST", fmt.Sprintf("/ships/%s/speed", shipID), body, &sh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Ship %q speed set to %g", sh.Name, sh.Speed)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var health service.HealthInfo
	err := c.apiCall("GET", "/health", nil, &health)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("API Status: %s\nShips Count: %d", health.Status, health.ShipsCount)
	return mcp.NewToolResultText(result), nil
}

// Formatters

func formatShip(sh *ship.Ship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ship Details:\n")
	fmt.Fprintf(&b, "  ID: %s\n", sh.ID)
	fmt.Fprintf(&b, "  Name: %s\n", sh.Name)
	fmt.Fprintf(&b, "  Position: (%g, %g)\n", sh.PositionX, sh.PositionY)
	fmt.Fprintf(&b, "  Destination: (%g, %g)\n", sh.DestinationX, sh.DestinationY)
	fmt.Fprintf(&b, "  Speed: %g", sh.Speed)
	return b.String()
}

func formatShipList(ships []*ship.Ship) string {
	if len(ships) == 0 {
		return "No ships found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fleet (%d ships):\n\n", len(ships))
	for _, sh := range ships {
		fmt.Fprintf(&b, "• %s (%s)\n  Position: (%g, %g), Destination: (%g, %g), Speed: %g\n\n",
			sh.Name, sh.ID, sh.PositionX, sh.PositionY, sh.DestinationX, sh.DestinationY, sh.Speed)
	}
	return strings.TrimRight(b.String(), "\n")
}
