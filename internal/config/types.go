package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Config files that were read, empty if absent.
	UserFile    string
	ProjectFile string
}

// Default values.
const (
	DefaultStore     = "file"
	DefaultDataDir   = "~/.tasklist/data"
	DefaultKey       = "tasks"
	DefaultLogDir    = "~/.tasklist/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Storage
	Store   string `toml:"store"`
	DataDir string `toml:"data_dir"`
	Key     string `toml:"key"`

	// Optional schema override for stored values; empty uses the built-in schema.
	SchemaFile string `toml:"schema_file"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
