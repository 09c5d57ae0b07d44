package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the server",
	Long: `Sign in with your email and password.

The token is kept locally and used by later commands until it expires.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Controller(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			if email, err = readLine("Email: "); err != nil {
				return err
			}
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		if err := ctrl.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		profile, _ := ctrl.Profile()
		color.Green("Signed in as %s", profile.Email)
		fmt.Printf("%d subscriptions on the server.\n", len(ctrl.Subscriptions()))

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
}
