package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd groups everything about who is using the client.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign up, sign out or continue as a guest",
}
