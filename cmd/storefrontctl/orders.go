package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const tokenEnv = "STOREFRONT_TOKEN"

func newOrdersCmd(opts *cliOptions) *cobra.Command {

	var token string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List a shopper's orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv(tokenEnv)
			}
			if token == "" {
				return errors.New("a bearer token is required: pass --token or set " + tokenEnv)
			}

			api, err := opts.client()
			if err != nil {
				return err
			}

			orders, err := api.ListOrders(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}

			if len(orders) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No orders")
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tPAYMENT\tITEMS\tTOTAL\tPLACED\tCANCELLABLE")
			for _, o := range orders {
				items := 0
				for _, item := range o.Items {
					items += item.Quantity
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%t\n",
					o.ID, o.Status, o.PaymentMethod, items, o.Total.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"), o.Cancellable())
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "shopper bearer token (env "+tokenEnv+")")

	return cmd
}
