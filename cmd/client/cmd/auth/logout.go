package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the local session",
	Long: `Forget the token and leave guest mode.

Subscriptions kept in guest mode stay on this device.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Controller(cmd)
		if err != nil {
			return err
		}

		if err := ctrl.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")

		return nil
	},
}
