package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCountriesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries the shop ships to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}

			countries, err := api.Countries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list countries: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME")
			for _, c := range countries {
				fmt.Fprintf(tw, "%s\t%s\n", c.Code, c.Name)
			}

			return tw.Flush()
		},
	}
}
