package ship

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "Valid name", input: "Titanic", wantErr: nil},
		{name: "Empty name", input: "", wantErr: ErrEmptyName},
		{name: "Whitespace only", input: "   ", wantErr: ErrEmptyName},
		{name: "Name with spaces", input: "Queen Mary 2", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpeed(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr error
	}{
		{name: "Positive speed", input: 1.0, wantErr: nil},
		{name: "Small positive speed", input: 0.001, wantErr: nil},
		{name: "Zero speed", input: 0, wantErr: ErrNonPositiveSpeed},
		{name: "Negative speed", input: -1.5, wantErr: ErrNonPositiveSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpeed(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSpeed(%v) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestShipValidate(t *testing.T) {
	valid := Ship{
		Name:         "Endeavour",
		PositionX:    -3.5,
		PositionY:    0,
		DestinationX: 100,
		DestinationY: -42.25,
		Speed:        DefaultSpeed,
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on a valid ship returned %v", err)
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Validate() with empty name = %v, want ErrEmptyName", err)
	}

	stopped := valid
	stopped.Speed = 0
	if err := stopped.Validate(); !errors.Is(err, ErrNonPositiveSpeed) {
		t.Errorf("Validate() with zero speed = %v, want ErrNonPositiveSpeed", err)
	}
}
