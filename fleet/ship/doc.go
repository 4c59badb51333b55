// Package ship defines the Ship model and its field-level validation rules.
//
// A Ship is the only managed resource of the fleet service: a text name, a 2D
// position, a 2D destination, and a cruising speed. Coordinates are plain
// float64 values and may be negative or zero; speed must be strictly
// positive and defaults to DefaultSpeed when omitted at creation.
//
// The package is transport-agnostic: JSON field names are fixed here
// (position_x, position_y, destination_x, destination_y, speed) and every
// layer above serializes the same struct.
package ship
