package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var GuestCmd = &cobra.Command{
	Use:   "guest",
	Short: "Continue without an account",
	Long: `Switch to guest mode. Subscriptions are kept on this device only
and are never sent to the server.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Controller(cmd)
		if err != nil {
			return err
		}

		if err := ctrl.EnterGuest(cmd.Context()); err != nil {
			return err
		}

		color.Yellow("Guest mode: data stays on this device.")
		fmt.Printf("%d subscriptions saved locally.\n", len(ctrl.Subscriptions()))

		return nil
	},
}
