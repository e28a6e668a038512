package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
)

// Config represents the complete application configuration. Section fields
// carry an envconfig prefix; leaf fields use split_words so only the fully
// prefixed variable (LISTINGS_SERVER_PORT, never PORT) is read.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" split_words:"true"`
	Port            int           `yaml:"port" split_words:"true" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true" validate:"gte=0"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" split_words:"true" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true" validate:"gt=0"`
	RequestTimeout  time.Duration `yaml:"request_timeout" split_words:"true" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" split_words:"true"`
	EnableCORS     bool            `yaml:"enable_cors" split_words:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" split_words:"true"`
	RPS     float64 `yaml:"rps" split_words:"true" validate:"gt=0"`
	Burst   int     `yaml:"burst" split_words:"true" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output      string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" split_words:"true"`
}

// AnalysisConfig controls how listings files are analyzed.
type AnalysisConfig struct {
	Variant          string `yaml:"variant" split_words:"true" validate:"oneof=basic extended"`
	Workers          int    `yaml:"workers" split_words:"true" validate:"min=1,max=64"`
	MinRowsPerWorker int    `yaml:"min_rows_per_worker" split_words:"true" validate:"min=1"`
	MaxUploadBytes   int64  `yaml:"max_upload_bytes" split_words:"true" validate:"min=1024"`
	OutputDir        string `yaml:"output_dir" split_words:"true"`
}

// TelemetryConfig contains metrics and tracing configuration
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" split_words:"true" validate:"required"`
	MetricsEnabled bool   `yaml:"metrics_enabled" split_words:"true"`
	TraceExporter  string `yaml:"trace_exporter" split_words:"true" validate:"oneof=none stdout"`
}

var validate = validator.New()

// Load loads configuration from defaults, the optional config file and
// environment variables, in increasing order of precedence. A .env file in
// the working directory is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigError("failed to read .env file", err)
	}
	return LoadFile(configFilePath())
}

// LoadFile is Load with an explicit config file. A missing file is not an
// error; the defaults and the environment still apply.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile unmarshals the YAML file over cfg so keys absent from the file
// keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.NewConfigError("failed to read config file", err).WithContext("path", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return apperrors.NewConfigError("failed to parse config file", err).WithContext("path", path)
	}
	return nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigError("config validation failed", err).
				WithContext("fields", strings.Join(fields, ", "))
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// configFilePath returns the config file named by the environment or the default
func configFilePath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return DefaultConfigFile
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: DefaultShutdownTimeout,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     false,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/listings.log",
		},
		Analysis: AnalysisConfig{
			Variant:          DefaultVariant,
			Workers:          1,
			MinRowsPerWorker: DefaultMinRowsPerWorker,
			MaxUploadBytes:   DefaultMaxUploadBytes,
			OutputDir:        ".",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			MetricsEnabled: true,
			TraceExporter:  "none",
		},
	}
}
