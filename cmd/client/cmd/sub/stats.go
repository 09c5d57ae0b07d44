package sub

import (
	"os"

	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show monthly and yearly totals",
	Long: `Show the number of subscriptions and their monthly and yearly totals.

Signed in, the totals come from the server. In guest mode they are computed locally.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Restored(cmd)
		if err != nil {
			return err
		}

		st, err := ctrl.Totals(cmd.Context())
		if err != nil {
			return err
		}
		renderStats(os.Stdout, st)

		return nil
	},
}
