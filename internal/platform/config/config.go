// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	API       APIConfig       `koanf:"api"`
	Database  DatabaseConfig  `koanf:"database"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// APIConfig holds the multi-tenant routing settings. Host is the configured
// API host that tenant subdomains are matched against; ServiceName is the log
// namespace and the name reported by the service metadata endpoint.
type APIConfig struct {
	Host        string `koanf:"host"`
	ServiceName string `koanf:"service_name"`
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds source persistence settings.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Exporter string `koanf:"exporter"`
	Endpoint string `koanf:"endpoint"`
}
