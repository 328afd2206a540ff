package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the preview theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		b := appInstance.Builder

		if len(args) == 1 {
			switch args[0] {
			case "dark":
				b.SetDarkMode(cmd.Context(), true)
			case "light":
				b.SetDarkMode(cmd.Context(), false)
			case "toggle":
				b.SetDarkMode(cmd.Context(), !b.DarkMode())
			default:
				return fmt.Errorf("unknown theme %q (want dark, light, or toggle)", args[0])
			}
		}

		name := "light"
		if b.DarkMode() {
			name = "dark"
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}
