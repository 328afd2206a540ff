package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List scopes with a saved invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		scopes, err := appInstance.Scopes(cmd.Context())
		if err != nil {
			return err
		}

		current := appInstance.Config.Storage.Scope
		out := cmd.OutOrStdout()
		for _, s := range scopes {
			line := fmt.Sprintf("%-20s", s.Name)
			if !s.UpdatedAt.IsZero() {
				line += " " + mutedStyle.Render("saved "+s.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			if s.Name == current {
				line += " " + successStyle.Render("(current)")
			}
			fmt.Fprintln(out, line)
		}

		if len(scopes) == 0 {
			fmt.Fprintln(out, "No saved invoices")
		}
		return nil
	},
}
