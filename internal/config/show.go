package config

import (
	"fmt"
	"io"
	"strings"
)

// RenderEffective writes the resolved configuration as a human-readable
// annotated summary to w. This powers the "config show" command, giving
// users visibility into the effective values after all four override layers
// (defaults -> file -> env -> CLI) have been applied. The API key is always
// redacted down to its tenant part.
func RenderEffective(rp *ResolvedProfile, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration for profile %q\n\n", rp.Name)

	ew.printf("[profile]\n")
	ew.printf("  name         = %q\n", rp.Name)
	ew.printf("  endpoint     = %q\n", rp.Endpoint)
	ew.printf("  api_key      = %q\n", RedactAPIKey(rp.APIKey))
	ew.printf("  test_channel = %t\n", rp.TestChannel)
	ew.printf("\n")

	ew.printf("[logging]\n")
	ew.printf("  log_level  = %q\n", rp.Logging.LogLevel)

	if rp.Logging.LogFile != "" {
		ew.printf("  log_file   = %q\n", rp.Logging.LogFile)
	}

	ew.printf("  log_format = %q\n", rp.Logging.LogFormat)
	ew.printf("\n")

	ew.printf("[network]\n")
	ew.printf("  timeout    = %q\n", rp.Network.Timeout)

	if rp.Network.UserAgent != "" {
		ew.printf("  user_agent = %q\n", rp.Network.UserAgent)
	}

	return ew.err
}

// RedactAPIKey keeps the tenant part of a tenant.secret key and masks the
// rest. Malformed keys are masked entirely.
func RedactAPIKey(key string) string {
	if key == "" {
		return ""
	}

	tenant, _, ok := strings.Cut(key, ".")
	if !ok || tenant == "" {
		return "****"
	}

	return tenant + ".****"
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops, so callers can chain printf
// calls without checking each one individually.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
