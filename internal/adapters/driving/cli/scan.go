package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/i18nscout/internal/adapters/driving/report"
	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/logger"
)

var (
	scanRepo           string
	scanBranch         string
	scanWorkers        int
	scanFormat         string
	scanOutput         string
	scanBinaryCatalogs bool
	scanExclude        []string
	scanSkipForks      bool
	scanSkipArchived   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <user>",
	Short: "Find translation files in a user's repositories",
	Long: `Lists every repository owned by the user, filters each tree by path rules,
then confirms candidates by inspecting their content.

Repositories whose file tree cannot be read are reported as failures and the
scan continues. Use --repo to scan a single repository.`,
	Example: `  i18nscout scan octocat
  i18nscout scan octocat --repo Hello-World --branch develop
  i18nscout scan octocat --format json --output result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	flags := scanCmd.Flags()
	flags.StringVar(&scanRepo, "repo", "", "scan only this repository")
	flags.StringVarP(&scanBranch, "branch", "b", "", "scan this branch instead of each repository's default")
	flags.IntVarP(&scanWorkers, "workers", "w", 4, "repositories scanned concurrently")
	flags.StringVarP(&scanFormat, "format", "f", "text", "output format: text, json or yaml")
	flags.StringVarP(&scanOutput, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVar(&scanBinaryCatalogs, "binary-catalogs", false, "also confirm .mo and .xliff files")
	flags.StringSliceVar(&scanExclude, "exclude", nil, "glob of paths to ignore (repeatable)")
	flags.BoolVar(&scanSkipForks, "skip-forks", false, "skip forked repositories")
	flags.BoolVar(&scanSkipArchived, "skip-archived", false, "skip archived repositories")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if newScanner == nil {
		return errors.New("scan service not configured")
	}
	user := args[0]

	format, err := report.ParseFormat(scanFormat)
	if err != nil {
		return err
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	scanner, err := newScanner(opts)
	if err != nil {
		return fmt.Errorf("create scanner: %w", err)
	}

	ctx := cmd.Context()
	startMetrics(ctx)

	var rep *domain.ScanReport
	if scanRepo != "" {
		start := time.Now()
		paths, err := scanner.ScanRepository(ctx, user, scanRepo, "")
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		rep = &domain.ScanReport{
			ID:         uuid.NewString(),
			User:       user,
			StartedAt:  start,
			FinishedAt: time.Now(),
			Stats:      domain.ScanStats{Repositories: 1, Confirmed: len(paths)},
		}
		rep.Result.Add(scanRepo, paths)
	} else {
		rep, err = scanner.ScanUser(ctx, user)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	}

	w, closeOutput, err := openOutput(cmd, scanOutput)
	if err != nil {
		return err
	}
	if err := report.Write(w, format, rep); err != nil {
		closeOutput()
		return fmt.Errorf("write report: %w", err)
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if n := len(rep.Failures); n > 0 {
		logger.Warn("%d repositories could not be scanned", n)
	}
	return nil
}

// openOutput returns stdout, or a created file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
