package cli

import (
	"fmt"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/preview"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the invoice preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := appInstance.Builder
		snap := b.Snapshot()

		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = terminalWidth() - 6 // frame border and padding
		}

		doc := preview.Build(snap.Invoice, snap.Total)
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(doc, preview.ThemeFor(b.DarkMode()), width))
		return nil
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the invoice total",
	RunE: func(cmd *cobra.Command, args []string) error {
		total := appInstance.Builder.CurrentTotal()

		exact, _ := cmd.Flags().GetBool("exact")
		if exact {
			fmt.Fprintln(cmd.OutOrStdout(), total.String())
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), domain.FormatMoney(total))
		return nil
	},
}

func init() {
	showCmd.Flags().Int("width", 0, "preview width in columns (default terminal width)")
	totalCmd.Flags().Bool("exact", false, "print the unrounded total")
}
