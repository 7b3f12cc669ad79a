package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Valid log levels and formats.
var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"auto": true, "text": true, "json": true}
)

// Validate checks a parsed Config for structural problems: malformed
// endpoints, bad log levels, unparseable timeouts. Credential presence is
// not checked here — a config file with profiles but no api_key is fine
// when the key comes from BINDIST_API_KEY.
func Validate(cfg *Config) error {
	var errs []error

	for name, profile := range cfg.Profiles {
		if profile.Endpoint != "" {
			if err := validateEndpoint(profile.Endpoint); err != nil {
				errs = append(errs, fmt.Errorf("profile %q: %w", name, err))
			}
		}

		if profile.APIKey != "" {
			if err := validateAPIKey(profile.APIKey); err != nil {
				errs = append(errs, fmt.Errorf("profile %q: %w", name, err))
			}
		}

		if profile.Logging != nil {
			if err := validateLogging(profile.Logging); err != nil {
				errs = append(errs, fmt.Errorf("profile %q: %w", name, err))
			}
		}

		if profile.Network != nil {
			if err := validateNetwork(profile.Network); err != nil {
				errs = append(errs, fmt.Errorf("profile %q: %w", name, err))
			}
		}
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		errs = append(errs, err)
	}

	if err := validateNetwork(&cfg.Network); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateResolved checks the final profile after all override layers.
// Here the endpoint and API key must actually be present, because this is
// what the CLI is about to dial with.
func ValidateResolved(rp *ResolvedProfile) error {
	if rp.Endpoint == "" {
		return fmt.Errorf(
			"no endpoint configured; set it in the config file, %s, or --endpoint", EnvEndpoint)
	}

	if err := validateEndpoint(rp.Endpoint); err != nil {
		return err
	}

	if rp.APIKey == "" {
		return fmt.Errorf(
			"no API key configured; set it in the config file, %s, or --api-key", EnvAPIKey)
	}

	if err := validateAPIKey(rp.APIKey); err != nil {
		return err
	}

	if err := validateLogging(&rp.Logging); err != nil {
		return err
	}

	return validateNetwork(&rp.Network)
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("endpoint %q is not a valid URL: %w", endpoint, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", endpoint)
	}

	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", endpoint)
	}

	return nil
}

// validateAPIKey checks the tenant.secret shape without judging either
// part's content. The message never echoes the key itself.
func validateAPIKey(key string) error {
	tenant, secret, ok := strings.Cut(key, ".")
	if !ok || tenant == "" || secret == "" {
		return fmt.Errorf("api_key is malformed: expected tenant and secret separated by a dot")
	}

	return nil
}

func validateLogging(l *LoggingConfig) error {
	if l.LogLevel != "" && !validLogLevels[l.LogLevel] {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", l.LogLevel)
	}

	if l.LogFormat != "" && !validLogFormats[l.LogFormat] {
		return fmt.Errorf("log_format %q is not one of auto, text, json", l.LogFormat)
	}

	return nil
}

func validateNetwork(n *NetworkConfig) error {
	if n.Timeout == "" {
		return nil
	}

	d, err := time.ParseDuration(n.Timeout)
	if err != nil {
		return fmt.Errorf("timeout %q is not a valid duration: %w", n.Timeout, err)
	}

	if d < 0 {
		return fmt.Errorf("timeout %q is negative", n.Timeout)
	}

	return nil
}

// ParseTimeout converts the textual timeout into a duration, falling back
// to the default when unset. Assumes the config already validated; "0"
// means no timeout.
func (rp *ResolvedProfile) ParseTimeout() time.Duration {
	raw := rp.Network.Timeout
	if raw == "" {
		raw = defaultTimeout
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		d, _ = time.ParseDuration(defaultTimeout)
	}

	return d
}
