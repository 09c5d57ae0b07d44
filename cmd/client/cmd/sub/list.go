package sub

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
	"subtracker/internal/domain/subscription"
)

var listJSON bool

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show all subscriptions, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Restored(cmd)
		if err != nil {
			return err
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(subscription.NewListResponse(ctrl.Subscriptions()))
		}

		renderCards(os.Stdout, ctrl.Cards(time.Now()))
		renderStats(os.Stdout, ctrl.Stats())

		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "print the list as JSON")
}
