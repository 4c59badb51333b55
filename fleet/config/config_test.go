package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() returned error: %v", err)
	}

	if cfg.ServiceHost != "localhost" {
		t.Errorf("ServiceHost = %q, want %q", cfg.ServiceHost, "localhost")
	}
	if cfg.ServicePort != 8080 {
		t.Errorf("ServicePort = %d, want 8080", cfg.ServicePort)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://localhost:8080")
	}
}

func TestNewConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	t.Setenv("FLEET_SERVICE_HOST", "0.0.0.0")
	t.Setenv("FLEET_SERVICE_PORT", "9000")
	t.Setenv("FLEET_API_URL", "http://fleet.internal:9000")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() returned error: %v", err)
	}

	if cfg.ServiceHost != "0.0.0.0" {
		t.Errorf("ServiceHost = %q, want %q", cfg.ServiceHost, "0.0.0.0")
	}
	if cfg.ServicePort != 9000 {
		t.Errorf("ServicePort = %d, want 9000", cfg.ServicePort)
	}
	if cfg.APIBaseURL != "http://fleet.internal:9000" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://fleet.internal:9000")
	}
}
