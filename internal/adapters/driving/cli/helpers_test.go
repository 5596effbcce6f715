package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/i18nscout/internal/adapters/driven/auth"
	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driving"
)

// mockScanner implements driving.Scanner for testing.
type mockScanner struct {
	report    *domain.ScanReport
	repoPaths []string
	err       error

	user       string
	owner      string
	repo       string
	repoBranch string
}

func (m *mockScanner) ScanUser(_ context.Context, username string) (*domain.ScanReport, error) {
	m.user = username
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockScanner) ScanRepository(_ context.Context, owner, repo, branch string) ([]string, error) {
	m.owner, m.repo, m.repoBranch = owner, repo, branch
	if m.err != nil {
		return nil, m.err
	}
	return m.repoPaths, nil
}

// mockFollowing implements driving.FollowingLister for testing.
type mockFollowing struct {
	logins []string
	err    error
}

func (m *mockFollowing) ListFollowing(_ context.Context, _ string) ([]string, error) {
	return m.logins, m.err
}

// setupServices installs mocks and records the options they were built with.
func setupServices(scanner *mockScanner, following *mockFollowing) (*Options, func()) {
	oldScanner, oldFollowing := newScanner, newFollowing
	got := &Options{}

	SetServices(
		func(opts Options) (driving.Scanner, error) {
			*got = opts
			return scanner, nil
		},
		func(opts Options) (driving.FollowingLister, error) {
			*got = opts
			return following, nil
		},
	)
	return got, func() {
		newScanner, newFollowing = oldScanner, oldFollowing
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with a private config file and no token
// environment. It returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(auth.EnvToken, "")
	t.Setenv(auth.EnvGitHubToken, "")

	resetFlags(rootCmd)

	cfg := filepath.Join(t.TempDir(), "config.toml")
	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", cfg)
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
