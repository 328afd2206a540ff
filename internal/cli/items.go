package cli

import (
	"fmt"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage line items",
	Long:  `List, add, remove, and edit the invoice's line items.`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List line items",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Builder.Current()
		out := cmd.OutOrStdout()

		// Print table header
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-10s %-32s %6s %12s %12s", "ID", "Description", "Qty", "Rate", "Amount")))
		fmt.Fprintln(out, "------------------------------------------------------------------------------")

		for _, item := range inv.Items {
			desc := item.Description
			if desc == "" {
				desc = mutedStyle.Render(fmt.Sprintf("%-32s", "(no description)"))
			} else {
				desc = fmt.Sprintf("%-32s", truncate(desc, 32))
			}
			fmt.Fprintf(out, "%-10s %s %6d %12s %12s\n",
				item.ID,
				desc,
				item.Quantity,
				domain.FormatMoney(item.Rate),
				domain.FormatMoney(domain.LineAmount(item)),
			)
		}

		fmt.Fprintf(out, "\n%d item(s), total %s\n", len(inv.Items), domain.FormatMoney(domain.InvoiceTotal(inv.Items)))
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty line item",
	Long: `Add an empty line item (quantity 1, rate 0) and print its id.

Use flags to fill it in right away:
  invoicegen items add --description "Design work" --quantity 10 --rate 85`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b := appInstance.Builder

		id := b.AddItem(ctx)

		// Optional initial values, same coercion as items set
		for _, field := range domain.ItemFields {
			if cmd.Flags().Changed(string(field)) {
				value, _ := cmd.Flags().GetString(string(field))
				b.UpdateItem(ctx, id, field, value)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := appInstance.Builder
		id := args[0]

		if b.RemoveItem(cmd.Context(), id) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed item %s\n", successStyle.Render("✓"), id)
			return nil
		}

		inv := b.Current()
		if _, ok := inv.FindItem(id); ok && len(inv.Items) == 1 {
			return fmt.Errorf("item %s is the only item and cannot be removed", id)
		}
		return fmt.Errorf("no item with id %s", id)
	},
}

var itemsSetCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Set a line item field (description, quantity, rate)",
	Long: `Set one field of a line item. Quantity and rate are coerced the way the
form does it: a quantity that is not a positive whole number becomes 1, and
a rate that is not a non-negative number becomes 0.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseItemField(args[1])
		if err != nil {
			return err
		}

		b := appInstance.Builder
		if !b.UpdateItem(cmd.Context(), args[0], field, joinValue(args[2:])) {
			return fmt.Errorf("no item with id %s", args[0])
		}

		item, _ := b.Current().FindItem(args[0])
		printSet(cmd, "item "+args[0], string(field), item.Get(field))
		return nil
	},
}

// truncate truncates a string to the specified length with ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)
	itemsCmd.AddCommand(itemsSetCmd)

	itemsAddCmd.Flags().String(string(domain.ItemDescription), "", "item description")
	itemsAddCmd.Flags().String(string(domain.ItemQuantity), "", "quantity")
	itemsAddCmd.Flags().String(string(domain.ItemRate), "", "rate")
}
