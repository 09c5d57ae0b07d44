package sub

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
	"subtracker/internal/domain/subscription"
)

var editFlags fieldFlags

var EditCmd = &cobra.Command{
	Use:     "edit <id>",
	Short:   "Change some attributes of a subscription",
	Example: `  subtracker sub edit 3 --price 17.99 --notes ""`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctrl, err := types.Restored(cmd)
		if err != nil {
			return err
		}

		f, err := editFlags.fields(cmd.Flags().Changed)
		if err != nil {
			return err
		}
		if f.IsEmpty() {
			return fmt.Errorf("%w: nothing to change, pass at least one flag", subscription.ErrInvalidInput)
		}
		if err := ctrl.Update(cmd.Context(), id, f); err != nil {
			return err
		}

		color.Green("Updated subscription #%d.", id)

		return nil
	},
}

func init() {
	editFlags.bind(EditCmd)
}
