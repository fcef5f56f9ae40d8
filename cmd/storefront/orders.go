package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mytheresa/storefront/app/orders"
	"github.com/mytheresa/storefront/models"
)

func (c *cli) ordersCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the order log",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			placed, err := store.Orders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read orders: %w", err)
			}
			return printOrders(cmd.OutOrStdout(), output, placed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

func printOrders(w io.Writer, format string, placed []models.Order) error {
	response := make([]orders.OrderResponse, len(placed))
	for i, o := range placed {
		response[i] = orders.NewOrderResponse(o)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case "yaml":
		// Round-trip through JSON so the YAML keys match the API field names.
		raw, err := json.Marshal(response)
		if err != nil {
			return err
		}
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tORDER\tCUSTOMER\tPAYMENT\tITEMS\tTOTAL")
		for _, o := range placed {
			items := 0
			for _, l := range o.Items {
				items += l.Quantity
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
				o.PlacedAt.Format("2006-01-02 15:04"),
				o.ID,
				o.Customer.FullName,
				o.PaymentMethod.Label(),
				items,
				o.Total.StringFixed(2),
			)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
