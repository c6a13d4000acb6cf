package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 20 * 1024 * 1024 // 20MB, well above any exam upload limit
	DefaultRateLimit   = 50.0             // requests per second in server mode
	DefaultRateBurst   = 100

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the exam document MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	DocumentDirectory string
	DefaultExam       string // exam type used when a request names none
	CatalogPath       string // optional YAML overlay for the category catalogs
	Workers           int    // concurrent items per batch

	// Server mode traffic control
	RateLimit float64
	RateBurst int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum uploaded file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		Workers:           runtime.NumCPU(),
		RateLimit:         DefaultRateLimit,
		RateBurst:         DefaultRateBurst,
		Version:           "1.0.0",
		ServerName:        "mcp-exam-docs",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("MCP_EXAMDOCS")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DocumentDirectory)
	viper.SetDefault("exam", cfg.DefaultExam)
	viper.SetDefault("catalog", cfg.CatalogPath)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("ratelimit", cfg.RateLimit)
	viper.SetDefault("rateburst", cfg.RateBurst)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP (SSE) server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DocumentDirectory, "Directory containing uploaded documents")
	pflag.String("exam", cfg.DefaultExam, "Default exam type (jee, neet, upsc, gate, cat) when a request names none")
	pflag.String("catalog", cfg.CatalogPath, "YAML file extending the built-in category catalogs")
	pflag.Int("workers", cfg.Workers, "Documents analyzed concurrently within a batch")
	pflag.Float64("ratelimit", cfg.RateLimit, "Requests per second allowed in server mode (0 disables)")
	pflag.Int("rateburst", cfg.RateBurst, "Request burst allowed in server mode")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum document file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "dir", "exam", "catalog",
		"workers", "ratelimit", "rateburst", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Exam Docs - classifies exam application documents and suggests file names\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --exam=neet --dir=/path/to/uploads       "+
			"# stdio mode, NEET naming by default\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081                # SSE server with /metrics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --catalog=extra-categories.yaml          # extend the catalogs\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_DIR         Document directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_EXAM        Default exam type\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_CATALOG     Catalog overlay file\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_WORKERS     Batch concurrency\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_RATELIMIT   Requests per second\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_RATEBURST   Request burst\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_EXAMDOCS_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("dir")
	cfg.DefaultExam = viper.GetString("exam")
	cfg.CatalogPath = viper.GetString("catalog")
	cfg.Workers = viper.GetInt("workers")
	cfg.RateLimit = viper.GetFloat64("ratelimit")
	cfg.RateBurst = viper.GetInt("rateburst")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate document directory
	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	// Check if document directory exists, create if it doesn't
	if _, err := os.Stat(c.DocumentDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocumentDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create document directory %s: %w", c.DocumentDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.DocumentDirectory, err)
	}

	// Exam ids are matched case-sensitively against lowercase mappings
	if c.DefaultExam != strings.ToLower(c.DefaultExam) {
		return fmt.Errorf("exam type must be lowercase: %s", c.DefaultExam)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			return fmt.Errorf("cannot access catalog file %s: %w", c.CatalogPath, err)
		}
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return errors.New("rate burst must be at least 1 when rate limiting is enabled")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, DefaultExam: %s, "+
		"CatalogPath: %s, Workers: %d, RateLimit: %.1f, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.DefaultExam,
		c.CatalogPath, c.Workers, c.RateLimit, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
