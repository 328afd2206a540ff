package cli

import (
	"fmt"
	"os"

	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/crypto"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Inspect or create the config file",
	Annotations: map[string]string{"app": "none"},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", successStyle.Render("✓"), path)
		return nil
	},
}

var configForgetKeyCmd = &cobra.Command{
	Use:   "forget-key",
	Short: "Remove the database key from the OS keyring",
	Long: `Remove the stored database encryption key. The next run that opens the
sqlite store asks for the password again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		k := crypto.NewKeyring()
		if err := k.DeleteKey(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s removed key from %s\n", successStyle.Render("✓"), k.Source())
		return nil
	},
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configForgetKeyCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}
