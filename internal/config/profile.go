package config

import "fmt"

// Default profile name when --profile is omitted.
const defaultProfileName = "default"

// Profile represents a single BinDist tenant within a TOML config file:
// which endpoint to talk to and with which API key. Per-profile section
// overrides (e.g. [profile.staging.network]) completely replace the
// corresponding global section — individual fields are not merged.
type Profile struct {
	Endpoint    string `toml:"endpoint"`
	APIKey      string `toml:"api_key"`
	TestChannel bool   `toml:"test_channel"`

	// Per-profile section overrides (completely replace global sections).
	Logging *LoggingConfig `toml:"logging,omitempty"`
	Network *NetworkConfig `toml:"network,omitempty"`
}

// ResolvedProfile contains profile fields plus effective config sections
// after merging global defaults with per-profile overrides. This is the
// final product consumed by the CLI.
type ResolvedProfile struct {
	Name        string
	Endpoint    string
	APIKey      string
	TestChannel bool

	Logging LoggingConfig
	Network NetworkConfig
}

// ResolveProfile merges global defaults with profile-specific overrides.
// If profileName is empty, the default profile is selected. Section-level
// override semantics are "replace, not merge".
func ResolveProfile(cfg *Config, profileName string) (*ResolvedProfile, error) {
	name, err := resolveProfileName(cfg, profileName)
	if err != nil {
		return nil, err
	}

	profile := cfg.Profiles[name]

	resolved := &ResolvedProfile{
		Name:        name,
		Endpoint:    profile.Endpoint,
		APIKey:      profile.APIKey,
		TestChannel: profile.TestChannel,
		Logging:     resolveSection(profile.Logging, cfg.Logging),
		Network:     resolveSection(profile.Network, cfg.Network),
	}

	return resolved, nil
}

// resolveSection returns the profile override if present, otherwise the
// global value.
func resolveSection[T any](profileOverride *T, global T) T {
	if profileOverride != nil {
		return *profileOverride
	}

	return global
}

// resolveProfileName determines which profile to use.
func resolveProfileName(cfg *Config, profileName string) (string, error) {
	if len(cfg.Profiles) == 0 {
		return "", fmt.Errorf("no profiles defined in config")
	}

	if profileName != "" {
		if _, ok := cfg.Profiles[profileName]; !ok {
			return "", fmt.Errorf("profile %q not found in config", profileName)
		}

		return profileName, nil
	}

	if _, ok := cfg.Profiles[defaultProfileName]; ok {
		return defaultProfileName, nil
	}

	if len(cfg.Profiles) == 1 {
		for name := range cfg.Profiles {
			return name, nil
		}
	}

	return "", fmt.Errorf(
		"multiple profiles defined but none named %q; use --profile to select one",
		defaultProfileName)
}
