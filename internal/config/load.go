package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal errors with "did you mean?"
// suggestions — silently ignoring a typo in a config file leads to
// hard-to-debug behavior, like a download quietly hitting the wrong
// endpoint.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns a
// Config populated with default values. This supports running without a
// config file at all: endpoint and key can come entirely from environment
// variables or flags.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the four-layer override chain:
// defaults -> config file -> environment variables -> CLI flags. It returns
// a fully resolved and validated profile ready for use. CLI flags always
// win, matching user expectations for one-off overrides without editing the
// config file.
func Resolve(env EnvOverrides, cli CLIOverrides) (*ResolvedProfile, error) {
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	profileName := cli.Profile
	if profileName == "" {
		profileName = env.Profile
	}

	// With no profiles defined, create a synthetic one so that pure
	// env/flag operation works without a config file.
	if len(cfg.Profiles) == 0 {
		syntheticName := defaultProfileName
		if profileName != "" {
			syntheticName = profileName
		}

		cfg.Profiles = map[string]Profile{syntheticName: {}}
	}

	resolved, err := ResolveProfile(cfg, profileName)
	if err != nil {
		return nil, err
	}

	if env.Endpoint != "" {
		resolved.Endpoint = env.Endpoint
	}

	if env.APIKey != "" {
		resolved.APIKey = env.APIKey
	}

	if cli.Endpoint != "" {
		resolved.Endpoint = cli.Endpoint
	}

	if cli.APIKey != "" {
		resolved.APIKey = cli.APIKey
	}

	if cli.TestChannel != nil {
		resolved.TestChannel = *cli.TestChannel
	}

	if err := ValidateResolved(resolved); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return resolved, nil
}
