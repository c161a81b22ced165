package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/window"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/spf13/cobra"
)

type productsFlags struct {
	start    int
	size     int
	step     int
	featured bool
	category string
	search   string
}

func newProductsCmd(opts *cliOptions) *cobra.Command {

	var f productsFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show one window of products",
		Long: `Show one carousel window of the catalog. The footer prints the start
indexes of the next and previous windows; both wrap around.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var products []models.Product

			switch {
			case f.featured:
				products, err = api.FeaturedProducts(ctx)
			case f.search != "":
				products, err = api.SearchProducts(ctx, f.search)
			case f.category != "":
				products, err = api.ProductsByCategory(ctx, f.category)
			default:
				products, err = shopapi.AllProducts(ctx, api, shopapi.CatalogPageSize)
			}
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			return printProducts(cmd.OutOrStdout(), window.Of(products, f.start, f.size, f.step))
		},
	}

	cmd.Flags().IntVar(&f.start, "start", 0, "index of the first product in the window")
	cmd.Flags().IntVar(&f.size, "size", 4, "window size, 0 shows everything")
	cmd.Flags().IntVar(&f.step, "step", window.StepPage, "how far next/prev move, 0 means a full window")
	cmd.Flags().BoolVar(&f.featured, "featured", false, "show the featured (hero) products")
	cmd.Flags().StringVar(&f.category, "category", "", "only products in this category")
	cmd.Flags().StringVar(&f.search, "search", "", "free text search")
	cmd.MarkFlagsMutuallyExclusive("featured", "category", "search")

	return cmd
}

func printProducts(out io.Writer, w window.Window[models.Product]) error {

	if w.Total == 0 {
		_, err := fmt.Fprintln(out, "No products")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tPRICE\tDISCOUNT\tNOW")

	for i, p := range w.Items {
		discount := "-"
		if p.HasDiscount() {
			discount = p.Discount.String() + "%"
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			w.Start+i, p.Key(), p.Name, p.Price.StringFixed(2), discount, p.EffectivePrice().StringFixed(2))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d of %d, next --start %d, prev --start %d\n", len(w.Items), w.Total, w.Next, w.Prev)

	return err
}
