package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andy/invoicegen/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

// errReported marks errors the user has already seen through a notification
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

var (
	configPath string
	scope      string
)

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Build and export invoices from the terminal",
	Long: `Invoicegen keeps one invoice in progress per scope, saves every change as
you make it, and exports it to PDF.

By default, running invoicegen without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance != nil || !needsApp(cmd) {
			return nil
		}
		a, err := app.New(cmd.Context(), app.Options{ConfigPath: configPath, Scope: scope})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		appInstance = a
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	defer closeApp()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
	}
	return err
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func closeApp() {
	if appInstance != nil {
		appInstance.Close()
		appInstance = nil
	}
}

// needsApp reports whether cmd touches the invoice. Commands that only deal
// with the config file run without opening storage.
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["app"] == "none" {
			return false
		}
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/invoicegen/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&scope, "scope", "", "snapshot scope, e.g. one per client (default from config)")

	// Add all subcommands
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(copyLinkCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(tuiCmd)
}
