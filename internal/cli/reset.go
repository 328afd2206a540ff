package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with a fresh invoice",
	Long: `Discard every field and line item and start a new invoice with a new
number, today's date, and the default payment term.

Examples:
  invoicegen reset          # asks for confirmation
  invoicegen reset --yes    # no questions asked`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), "This will clear ALL invoice fields and line items. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		appInstance.Actions(notifierFor(cmd)).Clear(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "New invoice %s\n", appInstance.Builder.Current().Details.Number)
		return nil
	},
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func notifierFor(cmd *cobra.Command) printNotifier {
	return printNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
