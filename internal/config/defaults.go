package config

// Default values for configuration options. These are layer 0 of the
// four-layer override chain.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"
	defaultTimeout   = "60s"
)

// DefaultConfig returns a Config populated with all default values. It is
// used both as the starting point for TOML decoding (so unset fields retain
// defaults) and as the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Profiles: make(map[string]Profile),
		Logging: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		Network: NetworkConfig{
			Timeout: defaultTimeout,
		},
	}
}
