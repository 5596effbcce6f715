// Package main is the entry point for the i18nscout CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/i18nscout/internal/adapters/driving/cli"
	"github.com/custodia-labs/i18nscout/internal/classifier"
	"github.com/custodia-labs/i18nscout/internal/connectors/github"
	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driving"
	"github.com/custodia-labs/i18nscout/internal/core/services"
	"github.com/custodia-labs/i18nscout/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetServices(newScanner, newFollowing)

	err := cli.Execute(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests a next step for platform errors a user can act on.
func errorHint(err error) string {
	switch {
	case github.IsRateLimited(err):
		msg := "GitHub rate limit reached"
		var rlErr *github.RateLimitError
		if errors.As(err, &rlErr) && !rlErr.RetryAt.IsZero() {
			msg += ", retry after " + rlErr.RetryAt.Local().Format(time.Kitchen)
		}
		return msg + ". Authenticated requests get a higher limit (--token, I18NSCOUT_TOKEN or GITHUB_TOKEN)."
	case github.IsUnauthorized(err):
		return "the token was rejected. Check --token, I18NSCOUT_TOKEN, GITHUB_TOKEN or `i18nscout config get token`."
	case github.IsForbidden(err):
		return "access denied. The token may lack the scopes needed to read this repository."
	case github.IsNotFound(err):
		return "not found. Check the user and repository names; private repositories need a token."
	}
	return ""
}

func newClient(opts cli.Options) (*github.Client, error) {
	cfg := github.DefaultConfig()
	if opts.BaseURL != "" {
		cfg.Endpoints.BaseURL = opts.BaseURL
	}
	cfg.PerPage = opts.PerPage
	cfg.RequestsPerSecond = opts.RequestsPerSecond
	return github.NewClient(opts.Token, cfg)
}

func newScanner(opts cli.Options) (driving.Scanner, error) {
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	paths, err := classifier.NewPathClassifier(opts.PathRules)
	if err != nil {
		return nil, err
	}
	content := classifier.NewContentClassifier(opts.ContentRules)

	filter := github.FilterOptions{SkipForks: opts.SkipForks, SkipArchived: opts.SkipArchived}
	return services.NewScanService(client, paths, content, services.ScanOptions{
		Workers: opts.Workers,
		Branch:  opts.Branch,
		Filter: func(repos []domain.Repository) []domain.Repository {
			return github.FilterRepositories(repos, filter)
		},
	}), nil
}

func newFollowing(opts cli.Options) (driving.FollowingLister, error) {
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	return services.NewFollowingService(client), nil
}
