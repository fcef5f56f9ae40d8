package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mytheresa/storefront/advisor"
)

func (c *cli) adviseCmd() *cobra.Command {
	var sel advisor.Selections

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Recommend a suit for an occasion, fit and fabric",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := advisor.Recommend(sel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rec.Name)
			fmt.Fprintln(out, rec.Description)
			fmt.Fprintf(out, "Best for: %s\n", rec.BestFor)
			fmt.Fprintf(out, "Fit: %s\n", rec.Fit)
			fmt.Fprintf(out, "Fabric: %s\n", rec.Fabric)
			fmt.Fprintf(out, "Price: $%s\n", rec.Price.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.Occasion, "occasion", "", "formal, wedding, evening or cocktail")
	cmd.Flags().StringVar(&sel.Fit, "fit", "", "slim, classic or modern")
	cmd.Flags().StringVar(&sel.Fabric, "fabric", "", "wool, cashmere or linen")
	return cmd
}
