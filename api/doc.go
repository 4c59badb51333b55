// Package api provides the HTTP REST handlers for the fleet service.
//
// The api package implements:
//   - RESTful CRUD endpoints for ships
//   - Field-level action endpoints (move, destination, speed)
//   - A health endpoint
//   - WebSocket upgrade handling for the fleet event feed
//
// Endpoints:
//
// Ships:
//   - GET    /ships              - List all ships
//   - POST   /ships              - Create a ship
//   - GET    /ships/{id}         - Get one ship
//   - PUT    /ships/{id}         - Partial update of any mutable fields
//   - DELETE /ships/{id}         - Delete a ship
//   - POST   /ships/{id}/move        - Overwrite position only
//   - POST   /ships/{id}/destination - Overwrite destination only
//   - POST   /ships/{id}/speed       - Set a new positive speed
//
// Service:
//   - GET /health - Liveness plus live ship count
//   - GET /ws     - WebSocket fleet event feed (?ship=<id> to filter)
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Successful mutations return the
// resulting ship; DELETE returns a confirmation message.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Validation failures map to 400, unknown ship IDs to 404, and anything
// unexpected to 500.
package api
