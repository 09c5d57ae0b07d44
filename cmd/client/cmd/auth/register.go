package auth

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var (
	registerEmail string
	registerName  string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the server",
	Long: `Create an account and sign in with it.

The password must be at least 6 characters long.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Controller(cmd)
		if err != nil {
			return err
		}

		email := registerEmail
		if email == "" {
			if email, err = readLine("Email: "); err != nil {
				return err
			}
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		if err := ctrl.Register(cmd.Context(), email, password, registerName); err != nil {
			return err
		}

		color.Green("Account created, signed in as %s", email)

		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	RegisterCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
}
