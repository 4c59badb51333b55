package service

import (
	"context"
	"errors"

	"github.com/harbormaster/fleet/fleet/ship"
)

// ErrInvalidInput marks requests rejected by validation. Concrete failures
// wrap it with detail, so callers test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ShipService defines all fleet operations exposed to transports.
type ShipService interface {
	// Collection operations
	ListShips(ctx context.Context) ([]*ship.Ship, error)
	CreateShip(ctx context.Context, req CreateShipRequest) (*ship.Ship, error)

	// Single-ship operations
	GetShip(ctx context.Context, id string) (*ship.Ship, error)
	UpdateShip(ctx context.Context, id string, req UpdateShipRequest) (*ship.Ship, error)
	MoveShip(ctx context.Context, id string, x, y float64) (*ship.Ship, error)
	SetDestination(ctx context.Context, id string, x, y float64) (*ship.Ship, error)
	SetSpeed(ctx context.Context, id string, speed float64) (*ship.Ship, error)
	DeleteShip(ctx context.Context, id string) error

	// Service health
	Health(ctx context.Context) (*HealthInfo, error)
}

// ShipRegistry defines the storage operations the service relies on.
type ShipRegistry interface {
	Insert(s ship.Ship) *ship.Ship
	Get(id string) (*ship.Ship, error)
	List() []*ship.Ship
	Update(id string, mutate func(*ship.Ship) error) (*ship.Ship, error)
	Delete(id string) error
	Count() int
}
