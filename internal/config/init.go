package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the starter file written by "config init". Every value
// shown commented-out is the default.
const configTemplate = `# bindist configuration
#
# Precedence: defaults < this file < BINDIST_* environment < CLI flags.

[profile.default]
endpoint = "https://api.example.com"
api_key = "tenant.secret"
# test_channel = false

# Additional tenants or environments:
#
# [profile.staging]
# endpoint = "https://staging.example.com"
# api_key = "tenant.secret"
# test_channel = true

[logging]
# log_level = "info"     # debug, info, warn, error
# log_format = "auto"    # auto, text, json
# log_file = ""

[network]
# timeout = "60s"        # whole-request timeout; "0" disables
# user_agent = ""
`

// WriteTemplate creates a starter config file at path, refusing to clobber
// an existing one. Parent directories are created with owner-only
// permissions because the file will hold API keys.
func WriteTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("config file %s already exists", path)
		}

		return fmt.Errorf("creating config file: %w", err)
	}

	if _, err := f.WriteString(configTemplate); err != nil {
		_ = f.Close()

		return fmt.Errorf("writing config template: %w", err)
	}

	return f.Close()
}
