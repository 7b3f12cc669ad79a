package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bindist/bindist-go/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration after all overrides",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a commented starter config to the default location (or --config).
Refuses to overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
}

// configShowJSON is the JSON output schema for config show. The API key is
// redacted; config show must never print the secret.
type configShowJSON struct {
	Profile     string `json:"profile"`
	Endpoint    string `json:"endpoint"`
	APIKey      string `json:"api_key"`
	TestChannel bool   `json:"test_channel"`
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`
	LogFile     string `json:"log_file,omitempty"`
	Timeout     string `json:"timeout"`
	UserAgent   string `json:"user_agent,omitempty"`
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	if resolvedCfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	if flagJSON {
		return printJSON(configShowJSON{
			Profile:     resolvedCfg.Name,
			Endpoint:    resolvedCfg.Endpoint,
			APIKey:      config.RedactAPIKey(resolvedCfg.APIKey),
			TestChannel: resolvedCfg.TestChannel,
			LogLevel:    resolvedCfg.Logging.LogLevel,
			LogFormat:   resolvedCfg.Logging.LogFormat,
			LogFile:     resolvedCfg.Logging.LogFile,
			Timeout:     resolvedCfg.Network.Timeout,
			UserAgent:   resolvedCfg.Network.UserAgent,
		})
	}

	return config.RenderEffective(resolvedCfg, os.Stdout)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	fmt.Println(effectiveConfigPath())

	return nil
}

// effectiveConfigPath applies the same flag > env > default precedence the
// resolver uses for the config file location.
func effectiveConfigPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}

	if envPath := config.ReadEnvOverrides().ConfigPath; envPath != "" {
		return envPath
	}

	return config.DefaultConfigPath()
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := effectiveConfigPath()

	if err := config.WriteTemplate(path); err != nil {
		return err
	}

	statusf("Wrote %s\n", path)

	return nil
}
