package cli

import (
	"errors"

	"github.com/andy/invoicegen/internal/service"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the invoice to PDF",
	Long: `Render the invoice preview and save it as <number>.pdf in the output
directory (export.output_dir in the config, or --out).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			appInstance.Exporter.OutputDir = out
		}

		if _, err := appInstance.Actions(notifierFor(cmd)).Export(cmd.Context()); err != nil {
			return reported(err)
		}
		return nil
	},
}

var copyLinkCmd = &cobra.Command{
	Use:   "copy-link",
	Short: "Copy the payment link to the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := appInstance.Actions(notifierFor(cmd)).CopyPaymentLink()
		if errors.Is(err, service.ErrNoPaymentLink) {
			// Guidance was shown; nothing failed
			return nil
		}
		if err != nil {
			return reported(err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output directory (default from config)")
}
