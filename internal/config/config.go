// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for bindist. It supports a four-layer
// override chain (defaults -> config file -> environment -> CLI flags) with
// per-profile section-level overrides that completely replace global
// sections.
package config

// Config is the top-level structure parsed from a TOML file. It contains
// named profiles and global configuration sections. When a profile defines
// its own section (e.g. [profile.staging.network]), that section completely
// replaces the global one — there is no merging of individual fields.
type Config struct {
	Profiles map[string]Profile `toml:"profile"`
	Logging  LoggingConfig      `toml:"logging"`
	Network  NetworkConfig      `toml:"network"`
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	LogFormat string `toml:"log_format"`
}

// NetworkConfig controls HTTP client behavior. Timeout covers the whole
// request including the body transfer, so uploads of large artifacts on
// slow links may need it raised.
type NetworkConfig struct {
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. TestChannel is a pointer so that an explicit
// --test-channel=false is distinguishable from not passing the flag.
type CLIOverrides struct {
	ConfigPath  string // --config flag (empty = use default)
	Profile     string // --profile flag (empty = use default)
	Endpoint    string // --endpoint flag
	APIKey      string // --api-key flag
	TestChannel *bool  // --test-channel flag
}
