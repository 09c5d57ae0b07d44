// Package types holds what the command tree shares through the cobra context.
package types

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"subtracker/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "client_app"

var errNoApp = errors.New("client is not initialized")

// Controller pulls the controller that the root command put into the context.
func Controller(cmd *cobra.Command) (*client.Controller, error) {
	ctrl, ok := cmd.Context().Value(ClientAppKey).(*client.Controller)
	if !ok || ctrl == nil {
		return nil, errNoApp
	}

	return ctrl, nil
}

// Restored is Controller followed by Restore. It fails when nobody is signed in and guest mode is off.
func Restored(cmd *cobra.Command) (*client.Controller, error) {
	ctrl, err := Controller(cmd)
	if err != nil {
		return nil, err
	}

	if err := ctrl.Restore(cmd.Context()); err != nil {
		return nil, err
	}
	if ctrl.State() == client.StateUnauthenticated {
		return nil, fmt.Errorf("%w: run `subtracker auth login` or `subtracker auth guest`", client.ErrNotAuthenticated)
	}

	return ctrl, nil
}
