package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
	"github.com/bindist/bindist-go/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath  string
	flagProfile     string
	flagEndpoint    string
	flagAPIKey      string
	flagTestChannel bool
	flagJSON        bool
	flagVerbose     bool
	flagQuiet       bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
// Commands in skipConfigCommands never populate it.
var resolvedCfg *config.ResolvedProfile

// skipConfigCommands lists commands that run without endpoint and API key
// resolution because they only touch local state. Uses CommandPath() for
// explicit matching, safe against future subcommand collisions.
var skipConfigCommands = map[string]bool{
	"bindist config init":   true,
	"bindist config path":   true,
	"bindist history":       true,
	"bindist history prune": true,
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bindist",
		Short:   "BinDist distribution API client",
		Long:    "Publish, manage, and fetch application binaries through a BinDist server.",
		Version: version,
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		// PersistentPreRunE resolves configuration before every command.
		// Local-only commands skip resolution: config init must work before
		// a config exists, and history reads only the local ledger.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfigCommands[cmd.CommandPath()] {
				return nil
			}

			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "config profile to use")
	cmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "API endpoint URL")
	cmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (overrides config and env)")
	cmd.PersistentFlags().BoolVar(&flagTestChannel, "test-channel", false, "address the test release channel")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output full response envelopes as JSON")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Register subcommands.
	cmd.AddCommand(newAppsCmd())
	cmd.AddCommand(newVersionsCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newShareCmd())
	cmd.AddCommand(newCustomersCmd())
	cmd.AddCommand(newActivityCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the four-layer
// override chain and stores the result in resolvedCfg for use by subcommands.
func loadConfig(cmd *cobra.Command) error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
		Profile:    flagProfile,
		Endpoint:   flagEndpoint,
		APIKey:     flagAPIKey,
	}

	// Only pass --test-channel to the resolver if the user explicitly set
	// it, so a profile's test_channel=true survives the flag default.
	if cmd.Flags().Changed("test-channel") {
		cli.TestChannel = &flagTestChannel
	}

	env := config.ReadEnvOverrides()

	resolved, err := config.Resolve(env, cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger configured by the resolved config and
// CLI flags. Config-file log level provides the baseline; --verbose and
// --quiet override it because CLI flags always win.
func buildLogger() *slog.Logger {
	level := slog.LevelInfo

	if resolvedCfg != nil {
		switch resolvedCfg.Logging.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	// CLI flags override config (highest priority).
	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newAPIClient builds a library client from the resolved configuration.
// Returns the logger too, for commands that log around their API calls.
func newAPIClient() (*bindist.Client, *slog.Logger) {
	logger := buildLogger()

	httpClient := &http.Client{Timeout: resolvedCfg.ParseTimeout()}
	if ua := resolvedCfg.Network.UserAgent; ua != "" {
		httpClient.Transport = &userAgentTransport{base: http.DefaultTransport, userAgent: ua}
	}

	return bindist.NewClient(resolvedCfg.Endpoint, resolvedCfg.APIKey, httpClient, logger), logger
}

// userAgentTransport replaces the User-Agent header on every request when
// the config specifies a custom one.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)

	return t.base.RoundTrip(clone)
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
