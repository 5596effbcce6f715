package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/i18nscout/internal/adapters/driven/auth"
	"github.com/custodia-labs/i18nscout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/i18nscout/internal/classifier"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driving"
	"github.com/custodia-labs/i18nscout/internal/logger"
	"github.com/custodia-labs/i18nscout/internal/metrics"
)

// Options is the configuration of one command run after merging flags,
// the config file and defaults.
type Options struct {
	Token             driven.TokenProvider
	BaseURL           string
	PerPage           int
	RequestsPerSecond float64
	Workers           int
	Branch            string
	SkipForks         bool
	SkipArchived      bool
	PathRules         classifier.PathRules
	ContentRules      classifier.ContentRules
}

// ScannerFactory builds a scanner for resolved options.
type ScannerFactory func(Options) (driving.Scanner, error)

// FollowingFactory builds a following lister for resolved options.
type FollowingFactory func(Options) (driving.FollowingLister, error)

var (
	newScanner   ScannerFactory
	newFollowing FollowingFactory
)

// SetServices sets the factories used by the commands.
func SetServices(scanner ScannerFactory, following FollowingFactory) {
	newScanner = scanner
	newFollowing = following
}

// promptToken reads a token interactively. Tests replace it.
var promptToken = func(cmd *cobra.Command) (string, error) {
	return auth.PromptToken(os.Stdin, cmd.ErrOrStderr())
}

func openConfig() (*file.ConfigStore, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return store, nil
}

// resolveOptions merges flags over the config file over defaults.
// A flag wins only when it was set explicitly.
func resolveOptions(cmd *cobra.Command) (Options, error) {
	store, err := openConfig()
	if err != nil {
		return Options{}, err
	}
	settings := store.Settings()
	flags := cmd.Flags()

	opts := Options{
		BaseURL:           pickString(flags.Changed("base-url"), baseURL, settings.BaseURL),
		PerPage:           pickInt(flags.Changed("per-page"), perPage, settings.PerPage),
		RequestsPerSecond: pickFloat(flags.Changed("requests-per-second"), requestsPerSecond, settings.RequestsPerSecond),
		Workers:           pickInt(flags.Changed("workers"), scanWorkers, settings.Workers),
		Branch:            pickString(flags.Changed("branch"), scanBranch, settings.Branch),
		SkipForks:         scanSkipForks,
		SkipArchived:      scanSkipArchived,
		PathRules:         classifier.DefaultPathRules(),
		ContentRules:      classifier.DefaultContentRules(),
	}

	if len(settings.DirKeywords) > 0 {
		opts.PathRules.DirKeywords = settings.DirKeywords
	}
	if len(settings.Extensions) > 0 {
		opts.PathRules.Extensions = settings.Extensions
	}
	if len(settings.FilenamePatterns) > 0 {
		opts.PathRules.FilenamePatterns = settings.FilenamePatterns
	}
	opts.PathRules.Exclude = append(append([]string(nil), settings.Exclude...), scanExclude...)
	opts.ContentRules.BinaryCatalogs = scanBinaryCatalogs || settings.BinaryCatalogs

	if askToken {
		token, err := promptToken(cmd)
		if err != nil {
			return Options{}, err
		}
		opts.Token = auth.NewPATProvider(token, "prompt")
	} else {
		opts.Token = auth.Resolve(auth.Sources{Flag: tokenFlag, Config: settings.Token})
	}
	if !opts.Token.IsAuthenticated() {
		logger.Info("no token configured, using anonymous access (60 requests/hour)")
	}

	return opts, nil
}

func pickString(changed bool, flag, config string) string {
	if changed || config == "" {
		return flag
	}
	return config
}

func pickInt(changed bool, flag, config int) int {
	if changed || config == 0 {
		return flag
	}
	return config
}

func pickFloat(changed bool, flag, config float64) float64 {
	if changed || config == 0 {
		return flag
	}
	return config
}

// startMetrics serves metrics in the background until ctx is done.
func startMetrics(ctx context.Context) {
	if metricsAddr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, metricsAddr); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("metrics server: %v", err)
		}
	}()
	logger.Info("serving metrics on %s", metricsAddr)
}
