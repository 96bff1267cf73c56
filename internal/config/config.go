// Package config reads the configuration of the backend from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRemote   = "remote"
)

// Transports of the remote backend.
const (
	TransportHTTP = "http"
	TransportAMQP = "amqp"
)

var (
	backends   = []string{BackendMemory, BackendSQLite, BackendPostgres, BackendRemote}
	transports = []string{TransportHTTP, TransportAMQP}
)

var ErrInvalid = errors.New("configuration validation failed")

type Config struct {
	// HTTP server
	ListenAddress string
	APIURL        string

	// Storage
	StorageBackend string
	SQLitePath     string
	PostgresDSN    string

	// Remote storage and storage server
	RemoteTransport string
	RemoteURL       string
	AMQPURL         string
	AMQPQueue       string
	RPCTimeout      time.Duration

	// Logging
	LogFormat string
	LogLevel  string
	GinMode   string
}

// Load reads the configuration from the environment.
//
// The files are loaded into the environment first, variables that are
// already set are not overridden. Without files, a .env file in the working
// directory is loaded if it exists.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("loading environment files: %w", err)
		}
	}

	timeout, err := getEnvDuration("RPC_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenAddress: getEnv("LISTEN_ADDRESS", ":8080"),
		APIURL:        getEnv("API_URL", "http://localhost:8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", filepath.Join("data", "ledger.db")),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),

		RemoteTransport: getEnv("REMOTE_TRANSPORT", TransportHTTP),
		RemoteURL:       getEnv("REMOTE_URL", ""),
		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPQueue:       getEnv("AMQP_QUEUE", "ledger_storage"),
		RPCTimeout:      timeout,

		LogFormat: getEnv("LOG_FORMAT", ""),
		LogLevel:  getEnv("LOG_LEVEL", ""),
		GinMode:   getEnv("GIN_MODE", gin.ReleaseMode),
	}, nil
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := c.URL(); err != nil {
		problems = append(problems, err.Error())
	}

	if !slices.Contains(backends, c.StorageBackend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, backends))
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH cannot be empty when using the sqlite backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			problems = append(problems, "POSTGRES_DSN is required when using the postgres backend")
		}
	case BackendRemote:
		problems = append(problems, c.validateRemote()...)
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}

		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP_QUEUE cannot be empty when AMQP_URL is set")
		}
	}

	if c.RPCTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid RPC timeout %v: must be positive", c.RPCTimeout))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
		}
	}

	if c.GinMode != gin.DebugMode && c.GinMode != gin.ReleaseMode && c.GinMode != gin.TestMode {
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s'", c.GinMode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalid, strings.Join(problems, "\n- "))
	}

	return nil
}

func (c *Config) validateRemote() []string {
	var problems []string

	switch c.RemoteTransport {
	case TransportHTTP:
		if parsed, err := url.Parse(c.RemoteURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid REMOTE_URL '%s': must be an absolute URL when using the http transport", c.RemoteURL))
		}
	case TransportAMQP:
		if c.AMQPURL == "" {
			problems = append(problems, "AMQP_URL is required when using the amqp transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid remote transport '%s': must be one of %v", c.RemoteTransport, transports))
	}

	return problems
}

// URL returns the parsed external URL of the API.
func (c *Config) URL() (*url.URL, error) {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API_URL '%s': must be an absolute URL", c.APIURL)
	}

	return parsed, nil
}

// Level returns the log level. Without explicit level, debug mode logs at
// debug level and all other modes at info level.
func (c *Config) Level() zerolog.Level {
	if level, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		return level
	}

	if c.GinMode == gin.DebugMode {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}

// HumanLogs reports if logs are written for humans instead of as JSON.
//
// Unless set explicitly, debug mode logs for humans.
func (c *Config) HumanLogs() bool {
	if c.LogFormat != "" {
		return c.LogFormat == "human"
	}

	return c.GinMode == gin.DebugMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s '%s': %v", ErrInvalid, key, value, err)
	}
	return d, nil
}
