package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig   = "BINDIST_CONFIG"
	EnvProfile  = "BINDIST_PROFILE"
	EnvEndpoint = "BINDIST_ENDPOINT"
	EnvAPIKey   = "BINDIST_API_KEY"
)

// EnvOverrides holds values derived from environment variables. These sit
// between the config file and CLI flags in the override chain.
type EnvOverrides struct {
	ConfigPath string // BINDIST_CONFIG: override config file path
	Profile    string // BINDIST_PROFILE: active profile name
	Endpoint   string // BINDIST_ENDPOINT: API endpoint override
	APIKey     string // BINDIST_API_KEY: API key override
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; callers apply the relevant fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		Profile:    os.Getenv(EnvProfile),
		Endpoint:   os.Getenv(EnvEndpoint),
		APIKey:     os.Getenv(EnvAPIKey),
	}
}
