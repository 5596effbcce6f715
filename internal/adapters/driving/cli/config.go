package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/i18nscout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `View and change values in the configuration file.

List keys (dir_keywords, extensions, filename_patterns, exclude) take
comma-separated values. Flags given on the command line override the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configuration values",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := openConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", store.Path())
	for _, key := range file.Keys() {
		val, _ := store.Get(key)
		if key == "token" && val != "" {
			val = maskToken(val)
		}
		fmt.Fprintf(out, "%s = %s\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := openConfig()
	if err != nil {
		return err
	}

	val, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openConfig()
	if err != nil {
		return err
	}

	if err := store.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated in %s\n", args[0], store.Path())
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, err := openConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), store.Path())
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
