package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/spf13/cobra"
)

const passwordEnv = "STOREFRONT_PASSWORD"

func newLoginCmd(opts *cliOptions) *cobra.Command {

	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the bearer token",
		Long: `Sign in against the commerce backend and print the bearer token, ready
for use with "orders --token". The password may come from ` + passwordEnv + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return errors.New("a password is required: pass --password or set " + passwordEnv)
			}

			api, err := opts.client()
			if err != nil {
				return err
			}

			result, err := api.Login(cmd.Context(), &models.LoginRequest{
				Email:    strings.ToLower(strings.TrimSpace(email)),
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Signed in as %s\n", result.User.Email)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Token)

			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (env "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
