package config

import "time"

// Application constants
const (
	AppName = "listings-analyzer"

	// EnvPrefix namespaces every environment variable, e.g. LISTINGS_SERVER_PORT.
	EnvPrefix = "LISTINGS"

	// EnvConfigFile names the YAML file to load instead of DefaultConfigFile.
	EnvConfigFile     = "LISTINGS_CONFIG_FILE"
	DefaultConfigFile = "config.yaml"
)

// Server defaults
const (
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 2 * time.Minute

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)

// Analysis defaults
const (
	DefaultVariant          = "extended"
	DefaultMinRowsPerWorker = 5000
	DefaultMaxUploadBytes   = 32 << 20 // 32MB

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// API routes
const (
	APIBasePath      = "/api/v1"
	AnalysesEndpoint = "/api/v1/analyses"
	HealthEndpoint   = "/api/health"
	VersionEndpoint  = "/api/version"
	MetricsEndpoint  = "/metrics"
)
