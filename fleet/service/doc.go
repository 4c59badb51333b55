// Package service provides the business logic layer for the fleet service.
//
// ShipService is the main interface: it validates every request before
// touching the registry and is the only layer the transports (HTTP, MCP,
// CLI-over-HTTP) talk to.
//
// Architecture:
//
// The service layer sits between the transport layer and the ship registry.
// Each operation is a single validate-then-mutate step; there is no
// multi-step protocol and no state machine behind any endpoint.
//
// Usage:
//
//	reg := registry.New()
//	svc := service.NewShipService(reg)
//
//	created, err := svc.CreateShip(ctx, service.CreateShipRequest{...})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Error Handling:
//
// Validation failures wrap ErrInvalidInput; lookups of unknown IDs surface
// registry.ErrShipNotFound. Callers dispatch with errors.Is.
package service
