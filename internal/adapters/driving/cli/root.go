// Package cli provides the i18nscout command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/i18nscout/internal/logger"
)

// version is set at build time.
var version = "dev"

// Persistent flags shared by all commands.
var (
	configPath        string
	verbose           bool
	tokenFlag         string
	askToken          bool
	baseURL           string
	perPage           int
	requestsPerSecond float64
	metricsAddr       string
)

var rootCmd = &cobra.Command{
	Use:   "i18nscout",
	Short: "Find translation files in GitHub repositories",
	Long: `i18nscout lists a GitHub user's repositories and reports the files that
hold translations: gettext catalogs, JSON/ARB and YAML locale files, Android
values-xx folders and similar.

A path must look like a translation file and its content must confirm it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.i18nscout/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&tokenFlag, "token", "", "GitHub token (default $I18NSCOUT_TOKEN or $GITHUB_TOKEN)")
	flags.BoolVar(&askToken, "ask-token", false, "prompt for a GitHub token")
	flags.StringVar(&baseURL, "base-url", "", "API base URL (default https://api.github.com)")
	flags.IntVar(&perPage, "per-page", 100, "page size for list requests (1-100)")
	flags.Float64Var(&requestsPerSecond, "requests-per-second", 0, "throttle requests (0 = only honour API limits)")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
