package sub

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var addFlags fieldFlags

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a subscription",
	Example: `  subtracker sub add --name Netflix --category entertainment \
    --price 15.49 --cycle monthly --next 2025-01-15`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Restored(cmd)
		if err != nil {
			return err
		}

		f, err := addFlags.fields(cmd.Flags().Changed)
		if err != nil {
			return err
		}
		if err := ctrl.Add(cmd.Context(), f); err != nil {
			return err
		}

		color.Green("Added %s.", addFlags.appName)

		return nil
	},
}

func init() {
	addFlags.bind(AddCmd)
}
