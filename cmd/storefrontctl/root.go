package main

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	baseURL string
	timeout time.Duration
	api     shopapi.API
}

// client returns the injected API or dials the configured backend.
func (o *cliOptions) client() (shopapi.API, error) {
	if o.api != nil {
		return o.api, nil
	}

	if o.baseURL == "" {
		return nil, fmt.Errorf("no backend configured: pass --base-url or set SHOPAPI_BASE_URL")
	}

	client, err := shopapi.NewClient(o.baseURL, nil, o.timeout)
	if err != nil {
		return nil, err
	}

	o.api = client

	return client, nil
}

// newRootCmd builds the command tree. A nil api dials the backend named by
// flags or environment on first use.
func newRootCmd(api shopapi.API) *cobra.Command {

	opts := &cliOptions{api: api}

	// env defaults, flags override
	var env config.ShopAPI
	_ = cleanenv.ReadEnv(&env)

	rootCmd := &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Inspect the commerce backend behind the storefront",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	timeout := env.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", env.BaseURL, "commerce backend base URL (env SHOPAPI_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", timeout, "per request timeout")

	rootCmd.AddCommand(
		newProductsCmd(opts),
		newCountriesCmd(opts),
		newOrdersCmd(opts),
		newLoginCmd(opts),
	)

	return rootCmd
}
