package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/i18nscout/internal/adapters/driving/report"
)

var followingCmd = &cobra.Command{
	Use:   "following <user>",
	Short: "List the accounts a user follows",
	Long:  `Prints the login of every account the user follows, one per line.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFollowing,
}

func init() {
	rootCmd.AddCommand(followingCmd)
}

func runFollowing(cmd *cobra.Command, args []string) error {
	if newFollowing == nil {
		return errors.New("following service not configured")
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	lister, err := newFollowing(opts)
	if err != nil {
		return fmt.Errorf("create following service: %w", err)
	}

	ctx := cmd.Context()
	startMetrics(ctx)

	logins, err := lister.ListFollowing(ctx, args[0])
	if err != nil {
		return fmt.Errorf("list following failed: %w", err)
	}
	return report.WriteLines(cmd.OutOrStdout(), logins)
}
