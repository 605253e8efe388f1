package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig `yaml:"server"`
	Logging LogConfig    `yaml:"logging"`
}

// ServerConfig contains settings for the listener and the served documents
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Root              string `yaml:"root"` // prefix prepended to every request path
	IndexFile         string `yaml:"index_file"`
	NotFoundFile      string `yaml:"not_found_file"`
	InvalidMethodFile string `yaml:"invalid_method_file"`
	// ContainRoot canonicalizes request paths and keeps them inside Root.
	// Off by default: the plain prefix join performs no traversal checks.
	ContainRoot       bool `yaml:"contain_root"`
	ReadHeaderTimeout int  `yaml:"read_header_timeout"` // in seconds, 0 disables
}

// LogConfig contains settings for logging
type LogConfig struct {
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // maximum size in megabytes
	MaxBackups  int    `yaml:"max_backups"` // maximum number of old log files to retain
	MaxAge      int    `yaml:"max_age"`     // maximum number of days to retain old log files
	Compress    bool   `yaml:"compress"`
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "::1",
			Port:              3000,
			Root:              "files/",
			IndexFile:         "index.html",
			NotFoundFile:      "not_found.html",
			InvalidMethodFile: "invalid_method.html",
			ContainRoot:       false,
			ReadHeaderTimeout: 0,
		},
		Logging: LogConfig{
			LogToFile:   false,
			LogFilePath: "tiny-file-server.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Default returns a configuration with default values
// This is an alias for LoadDefault
func Default() *Config {
	return LoadDefault()
}

// Load reads configuration from a file on top of the default values.
// Keys absent from the file keep their defaults; keys present always win,
// including false booleans and empty strings.
func Load(configPath string) (*Config, error) {
	cfg := LoadDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault attempts to load configuration from a file
// If the file doesn't exist or can't be parsed, it returns default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = LoadDefault()
	}
	return cfg
}

// Validate checks that the configuration can be served
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.Root == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	if c.Server.IndexFile == "" {
		return fmt.Errorf("index file must not be empty")
	}
	return nil
}

// ServerAddress returns the listen address, bracketing IPv6 hosts
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ReadHeaderTimeoutDuration returns the header read timeout as a duration
func (c *Config) ReadHeaderTimeoutDuration() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeout) * time.Second
}
