// Package sub holds the subscription commands: list, add, edit, delete and stats.
package sub

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subtracker/internal/domain/subscription"
)

var SubCmd = &cobra.Command{
	Use:     "sub",
	Aliases: []string{"subscription", "subscriptions"},
	Short:   "Manage subscriptions",
	Long: `List, add, edit and delete subscriptions.

Signed in, every change goes to the server. In guest mode it stays on this device.`,
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id must be a positive number, got %q", subscription.ErrInvalidInput, raw)
	}

	return id, nil
}
