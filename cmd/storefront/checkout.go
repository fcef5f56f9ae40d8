package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/shop"
)

func (c *cli) checkoutCmd() *cobra.Command {
	var (
		info    shop.CustomerInfo
		payment string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the saved cart as an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, backend, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			out := cmd.OutOrStdout()
			flow := store.NewCheckoutFlow()
			if err := flow.Begin(); err != nil {
				if errors.Is(err, shop.ErrEmptyCart) {
					fmt.Fprintln(out, "Your cart is empty!")
				}
				return err
			}

			info.PaymentMethod = models.PaymentMethod(payment)
			order, err := flow.Submit(cmd.Context(), info)
			var validationErr *shop.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintf(out, "Please fill all required fields! (%s)\n", strings.Join(validationErr.Fields, ", "))
				_ = flow.Back()
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Order %s placed\n", order.ID)
			fmt.Fprintf(out, "Payment: %s\n", order.PaymentMethod.Label())
			fmt.Fprintf(out, "Total: $%s\n", order.Total.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&info.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&info.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&info.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&info.Address, "address", "", "Shipping address")
	cmd.Flags().StringVar(&payment, "payment", string(models.PaymentCreditCard), "credit-card, paypal or cash-on-delivery")
	return cmd
}
