package sub

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
	"subtracker/internal/domain/subscription"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a subscription",
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

		s, ok := ctrl.Find(id)
		if !ok {
			return subscription.ErrNotFound
		}
		if !deleteYes && !confirm(fmt.Sprintf("Delete %s?", s.AppName)) {
			fmt.Println("Kept.")
			return nil
		}

		if err := ctrl.Delete(cmd.Context(), id); err != nil {
			return err
		}

		color.Green("Deleted %s.", s.AppName)

		return nil
	},
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
}
