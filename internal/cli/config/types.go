// Package config provides configuration management for the datasmell CLI.
//
// Values come from, in increasing precedence: built-in defaults, a
// datasmell.yaml file, DATASMELL_* environment variables and explicitly
// set command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`

	StatePath    string `koanf:"state_path"`
	NoSave       bool   `koanf:"no_save"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	Workers          int  `koanf:"workers"`
	SampleSize       int  `koanf:"sample_size"`
	KeepIndexColumns bool `koanf:"keep_index_columns"`
	MaxRows          int  `koanf:"max_rows"`

	// Smells restricts detection to these smell IDs. Empty runs every applicable smell.
	Smells []string `koanf:"smells"`
	// Disabled smells are never registered.
	Disabled []string `koanf:"disabled"`
	// Thresholds replaces the default mostly of a smell.
	Thresholds map[string]any `koanf:"thresholds"`

	Server ServerConfig `koanf:"server"`
	Watch  WatchConfig  `koanf:"watch"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes    int64         `koanf:"max_upload_bytes"`
	AllowedOrigins    []string      `koanf:"allowed_origins"`
}

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultStateFile         = ".datasmell/state.db"
	DefaultOutput            = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServerAddr        = "127.0.0.1:8484"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultMaxUploadBytes    = 32 << 20
	DefaultDebounce          = 500 * time.Millisecond
)

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		Server: ServerConfig{
			Addr:              DefaultServerAddr,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
			MaxUploadBytes:    DefaultMaxUploadBytes,
		},
		Watch: WatchConfig{Debounce: DefaultDebounce},
	}
}
