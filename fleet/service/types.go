package service

// CreateShipRequest carries the fields of a create call. Pointers distinguish
// an absent field from one explicitly set to its zero value; name and both
// coordinate pairs are required, speed is optional.
type CreateShipRequest struct {
	Name         *string  `json:"name"`
	PositionX    *float64 `json:"position_x"`
	PositionY    *float64 `json:"position_y"`
	DestinationX *float64 `json:"destination_x"`
	DestinationY *float64 `json:"destination_y"`
	Speed        *float64 `json:"speed,omitempty"`
}

// UpdateShipRequest carries a partial update: every field is optional and
// absent fields leave the ship unchanged.
type UpdateShipRequest struct {
	Name         *string  `json:"name,omitempty"`
	PositionX    *float64 `json:"position_x,omitempty"`
	PositionY    *float64 `json:"position_y,omitempty"`
	DestinationX *float64 `json:"destination_x,omitempty"`
	DestinationY *float64 `json:"destination_y,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateShipRequest) Empty() bool {
	return r.Name == nil &&
		r.PositionX == nil && r.PositionY == nil &&
		r.DestinationX == nil && r.DestinationY == nil &&
		r.Speed == nil
}

// HealthInfo is the health endpoint payload: a static status plus the number
// of live ships.
type HealthInfo struct {
	Status     string `json:"status"`
	ShipsCount int    `json:"ships_count"`
}
