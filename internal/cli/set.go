package cli

import (
	"fmt"
	"strings"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a freelancer, client, or invoice field",
	Long: `Set one field of the invoice. Multiple words are joined with spaces.

Examples:
  invoicegen set freelancer name Jane Doe
  invoicegen set client company "Acme Corp"
  invoicegen set invoice dueDate 2026-11-30
  invoicegen set invoice paymentLink https://pay.example.com/jane`,
}

var setFreelancerCmd = &cobra.Command{
	Use:       "freelancer <field> [value...]",
	Short:     "Set a freelancer field (name, email, phone, address, logo)",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: fieldNames(domain.FreelancerFields),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseFreelancerField(args[0])
		if err != nil {
			return err
		}
		value := joinValue(args[1:])
		appInstance.Builder.UpdateFreelancerField(cmd.Context(), field, value)
		printSet(cmd, "freelancer", string(field), value)
		return nil
	},
}

var setClientCmd = &cobra.Command{
	Use:       "client <field> [value...]",
	Short:     "Set a client field (name, company, email, address)",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: fieldNames(domain.ClientFields),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseClientField(args[0])
		if err != nil {
			return err
		}
		value := joinValue(args[1:])
		appInstance.Builder.UpdateClientField(cmd.Context(), field, value)
		printSet(cmd, "client", string(field), value)
		return nil
	},
}

var setInvoiceCmd = &cobra.Command{
	Use:       "invoice <field> [value...]",
	Short:     "Set an invoice field (number, date, dueDate, paymentLink, notes)",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: fieldNames(domain.DetailFields),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseDetailField(args[0])
		if err != nil {
			return err
		}
		value := joinValue(args[1:])
		appInstance.Builder.UpdateDetailField(cmd.Context(), field, value)
		printSet(cmd, "invoice", string(field), value)
		return nil
	},
}

func fieldNames[F ~string](fields []F) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// joinValue turns the remaining args into one value; a literal \n becomes a
// line break so addresses can be entered on one line
func joinValue(args []string) string {
	return strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
}

func printSet(cmd *cobra.Command, record, field, value string) {
	if value == "" {
		value = mutedStyle.Render("(empty)")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s.%s = %s\n", successStyle.Render("✓"), record, field, value)
}

func init() {
	setCmd.AddCommand(setFreelancerCmd)
	setCmd.AddCommand(setClientCmd)
	setCmd.AddCommand(setInvoiceCmd)
}
