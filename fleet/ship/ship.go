package ship

import (
	"errors"
	"strings"
)

// DefaultSpeed is assigned to ships created without an explicit speed.
const DefaultSpeed = 1.0

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNonPositiveSpeed = errors.New("speed must be greater than zero")
)

// Ship is the sole managed resource: a named vessel with a 2D position,
// a 2D destination, and a cruising speed.
type Ship struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PositionX    float64 `json:"position_x"`
	PositionY    float64 `json:"position_y"`
	DestinationX float64 `json:"destination_x"`
	DestinationY float64 `json:"destination_y"`
	Speed        float64 `json:"speed"`
}

// ValidateName rejects empty or whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateSpeed enforces the speed > 0 invariant.
func ValidateSpeed(speed float64) error {
	if speed <= 0 {
		return ErrNonPositiveSpeed
	}
	return nil
}

// Validate checks every invariant a live ship must hold.
func (s *Ship) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	return ValidateSpeed(s.Speed)
}
