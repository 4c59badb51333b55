// Package config loads the fleet service configuration from an optional
// TOML file, a .env file, and environment variables, in that order of
// precedence (environment wins).
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service and the CLI defaults.
type Config struct {
	ServiceHost string
	ServicePort int
	APIBaseURL  string
}

// NewConfig reads config/config.toml (or $CONFIG_NAME.toml) when present,
// merges .env and environment overrides, and falls back to defaults
// otherwise. A missing config file is not an error.
func NewConfig() (*Config, error) {
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "localhost")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("APIBaseURL", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Debug("no config file found, using defaults")
	}

	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	viper.BindEnv("ServiceHost", "FLEET_SERVICE_HOST")
	viper.BindEnv("ServicePort", "FLEET_SERVICE_PORT")
	viper.BindEnv("APIBaseURL", "FLEET_API_URL")

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	logrus.Info("config parsed")
	return cfg, nil
}
