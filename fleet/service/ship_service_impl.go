package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/harbormaster/fleet/fleet/ship"
)

// shipServiceImpl implements the ShipService interface
type shipServiceImpl struct {
	ships ShipRegistry
	mu    sync.RWMutex
}

// NewShipService creates a new ship service backed by the given registry.
func NewShipService(ships ShipRegistry) ShipService {
	return &shipServiceImpl{
		ships: ships,
	}
}

// ListShips returns every live ship.
func (s *shipServiceImpl) ListShips(ctx context.Context) ([]*ship.Ship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ships.List(), nil
}

// GetShip retrieves a single ship by ID.
func (s *shipServiceImpl) GetShip(ctx context.Context, id string) (*ship.Ship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ships.Get(id)
}

// CreateShip validates the request, assigns an ID, and stores the ship.
// Speed defaults to ship.DefaultSpeed when omitted.
func (s *shipServiceImpl) CreateShip(ctx context.Context, req CreateShipRequest) (*ship.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Name == nil {
		return nil, fmt.Errorf("%w: missing required field: name", ErrInvalidInput)
	}
	if req.PositionX == nil {
		return nil, fmt.Errorf("%w: missing required field: position_x", ErrInvalidInput)
	}
	if req.PositionY == nil {
		return nil, fmt.Errorf("%w: missing required field: position_y", ErrInvalidInput)
	}
	if req.DestinationX == nil {
		return nil, fmt.Errorf("%w: missing required field: destination_x", ErrInvalidInput)
	}
	if req.DestinationY == nil {
		return nil, fmt.Errorf("%w: missing required field: destination_y", ErrInvalidInput)
	}

	if err := ship.ValidateName(*req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	speed := ship.DefaultSpeed
	if req.Speed != nil {
		if err := ship.ValidateSpeed(*req.Speed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		speed = *req.Speed
	}

	created := s.ships.Insert(ship.Ship{
		Name:         *req.Name,
		PositionX:    *req.PositionX,
		PositionY:    *req.PositionY,
		DestinationX: *req.DestinationX,
		DestinationY: *req.DestinationY,
		Speed:        speed,
	})

	return created, nil
}

// UpdateShip applies a partial update. Absent fields are left unchanged;
// a name, if provided, must be non-empty and a speed must be positive.
func (s *shipServiceImpl) UpdateShip(ctx context.Context, id string, req UpdateShipRequest) (*ship.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Name != nil {
		if err := ship.ValidateName(*req.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.Speed != nil {
		if err := ship.ValidateSpeed(*req.Speed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return s.ships.Update(id, func(cur *ship.Ship) error {
		if req.Name != nil {
			cur.Name = *req.Name
		}
		if req.PositionX != nil {
			cur.PositionX = *req.PositionX
		}
		if req.PositionY != nil {
			cur.PositionY = *req.PositionY
		}
		if req.DestinationX != nil {
			cur.DestinationX = *req.DestinationX
		}
		if req.DestinationY != nil {
			cur.DestinationY = *req.DestinationY
		}
		if req.Speed != nil {
			cur.Speed = *req.Speed
		}
		return nil
	})
}

// MoveShip overwrites the position fields only.
func (s *shipServiceImpl) MoveShip(ctx context.Context, id string, x, y float64) (*ship.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ships.Update(id, func(cur *ship.Ship) error {
		cur.PositionX = x
		cur.PositionY = y
		return nil
	})
}

// SetDestination overwrites the destination fields only.
func (s *shipServiceImpl) SetDestination(ctx context.Context, id string, x, y float64) (*ship.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ships.Update(id, func(cur *ship.Ship) error {
		cur.DestinationX = x
		cur.DestinationY = y
		return nil
	})
}

// SetSpeed sets a new positive speed. A non-positive speed is rejected and
// the ship is left unchanged.
func (s *shipServiceImpl) SetSpeed(ctx context.Context, id string, speed float64) (*ship.Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ship.ValidateSpeed(speed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.ships.Update(id, func(cur *ship.Ship) error {
		cur.Speed = speed
		return nil
	})
}

// DeleteShip removes a ship permanently.
func (s *shipServiceImpl) DeleteShip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ships.Delete(id)
}

// Health reports service liveness and the current fleet size. There are no
// downstream dependencies to check.
func (s *shipServiceImpl) Health(ctx context.Context) (*HealthInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &HealthInfo{
		Status:     "healthy",
		ShipsCount: s.ships.Count(),
	}, nil
}
