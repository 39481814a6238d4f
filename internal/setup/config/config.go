package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// Current version of the config file
const (
	CurrentCommonVersion = 1
	CurrentAPIVersion    = 1
	CurrentWorkerVersion = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	API    APIConfig
	Worker WorkerConfig
}

// CommonConfig contains configuration shared between the API server and worker.
type CommonConfig struct {
	Version      int          `koanf:"version"`
	Debug        Debug        `koanf:"debug"`
	PostgreSQL   PostgreSQL   `koanf:"postgresql"`
	Redis        Redis        `koanf:"redis"`
	Verification Verification `koanf:"verification"`
}

// APIConfig contains REST API server specific configuration.
type APIConfig struct {
	Version   int       `koanf:"version"`
	Server    Server    `koanf:"server"`
	RateLimit RateLimit `koanf:"rate_limit"`
}

// WorkerConfig contains worker specific configuration.
type WorkerConfig struct {
	Version   int    `koanf:"version"`
	Schedule  string `koanf:"schedule"`   // Cron expression for the catch-up run
	BatchSize int    `koanf:"batch_size"` // Adjustments to apply per run
}

// Debug contains debug-related configuration.
type Debug struct {
	LogLevel      string `koanf:"log_level"`        // Log level (debug, info, warn, error)
	MaxLogsToKeep int    `koanf:"max_logs_to_keep"` // Maximum log sessions to keep
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host         string `koanf:"host"`           // Database hostname
	Port         int    `koanf:"port"`           // Database port
	User         string `koanf:"user"`           // Database username
	Password     string `koanf:"password"`       // Database password
	DBName       string `koanf:"db_name"`        // Database name
	MaxOpenConns int    `koanf:"max_open_conns"` // Maximum open connections
	MaxIdleConns int    `koanf:"max_idle_conns"` // Maximum idle connections
	MaxLifetime  int    `koanf:"max_lifetime"`   // Connection lifetime in minutes
	MaxIdleTime  int    `koanf:"max_idle_time"`  // Idle timeout in minutes
}

// Redis contains Redis connection configuration.
type Redis struct {
	Host     string `koanf:"host"`     // Redis hostname
	Port     int    `koanf:"port"`     // Redis port
	Username string `koanf:"username"` // Redis username
	Password string `koanf:"password"` // Redis password
}

// Verification contains the community verification thresholds.
type Verification struct {
	ApproveThreshold     int `koanf:"approve_threshold"`       // Approvals needed to verify
	MinVotesForRejection int `koanf:"min_votes_for_rejection"` // Minimum sample before the rejection rule fires
}

// Server contains HTTP server configuration.
type Server struct {
	Host string `koanf:"host"` // Listen address
	Port int    `koanf:"port"` // Listen port
}

// RateLimit contains rate limiting configuration.
type RateLimit struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"` // Sustained request rate per client
	BurstSize         int     `koanf:"burst_size"`          // Burst allowance per client
}

// LoadConfig loads the configuration from the specified file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Define config search paths
	configPaths := []string{
		".wildsight",
		homeDir + "/.wildsight/config",
		"/etc/wildsight/config",
		"/app/config",
		"/config",
		".",
	}

	// Load all config files
	var usedConfigPath string

	configFiles := []string{"common", "api", "worker"}
	for _, configName := range configFiles {
		configLoaded := false
		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				configLoaded = true
				if usedConfigPath == "" {
					usedConfigPath = path
				}
				break
			}
		}
		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}
	if err := checkConfigVersion("api", config.API.Version, CurrentAPIVersion); err != nil {
		return nil, "", err
	}
	if err := checkConfigVersion("worker", config.Worker.Version, CurrentWorkerVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}
	if current != expected {
		return fmt.Errorf("%w: %s.toml (got: %d, expected: %d)",
			ErrConfigVersionMismatch, name, current, expected)
	}
	return nil
}
