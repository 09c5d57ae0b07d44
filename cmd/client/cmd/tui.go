package cmd

import (
	"github.com/spf13/cobra"

	"subtracker/cmd/client/cmd/types"
	"subtracker/internal/app/client/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, err := types.Controller(cmd)
		if err != nil {
			return err
		}

		return tui.Run(cmd.Context(), ctrl)
	},
}
