package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"subtracker/cmd/client/cmd/auth"
	"subtracker/cmd/client/cmd/sub"
	"subtracker/cmd/client/cmd/types"
	"subtracker/internal/app/client"
	"subtracker/internal/app/client/config"
	"subtracker/internal/app/client/localstore"
	"subtracker/internal/domain/subscription"
	"subtracker/internal/utils/logger"
)

type closableStore interface {
	client.LocalStore
	Close() error
}

var (
	configDir string
	debug     bool
	serverURL string

	cfg   *config.Config
	log   *slog.Logger
	store closableStore
)

var rootCmd = &cobra.Command{
	Use:   "subtracker",
	Short: "Subtracker keeps track of your recurring subscriptions",
	Long: `Subtracker is a terminal client for the subscription tracker server.

Sign in to keep your subscriptions on the server, or continue as a guest
to keep them on this device only.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if store != nil {
		if cerr := store.Close(); cerr != nil && log != nil {
			log.Warn("close local store", "error", cerr)
		}
	}
	if err != nil {
		if log != nil {
			log.Debug("command failed", "error", err)
		}
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", message(err)))
		os.Exit(1)
	}
}

// message shows the user-facing text for failures the client knows about and the raw error for the rest.
func message(err error) string {
	var apiErr *client.APIError
	known := errors.Is(err, client.ErrNetwork) || errors.Is(err, client.ErrSessionExpired) ||
		errors.Is(err, client.ErrLocalStorage) || errors.Is(err, client.ErrNotAuthenticated) ||
		errors.Is(err, subscription.ErrNotFound) || errors.Is(err, subscription.ErrInvalidInput) ||
		errors.As(err, &apiErr)
	if debug || !known {
		return err.Error()
	}

	return client.UserMessage(err)
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if configDir != "" {
		cfg.SetConfigDir(configDir)
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	var out io.Writer = os.Stderr
	if cmd == tuiCmd && !debug {
		// log lines would tear the full-screen view
		out = io.Discard
	}
	log = logger.New(cfg.Env, logger.WithLevel(level), logger.WithOutput(out))

	store = openStore(cfg, log)

	var prompter client.Prompter = terminalPrompter{in: os.Stdin, out: os.Stderr}
	if cmd == tuiCmd {
		prompter = nil
	}

	ctrl := client.NewController(client.NewHTTPClient(cfg, log), store, prompter, log)
	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, ctrl))

	return nil
}

// openStore prefers the on-disk store and falls back to memory so the client still works, minus persistence.
func openStore(cfg *config.Config, log *slog.Logger) closableStore {
	if err := cfg.EnsureDir(); err != nil {
		log.Warn("local data will not be kept", "error", err)
		return localstore.NewMemory()
	}

	s, err := localstore.NewSQLite(cfg.DataPath)
	if err != nil {
		log.Warn("local data will not be kept", "path", cfg.DataPath, "error", err)
		return localstore.NewMemory()
	}

	return s
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory for local data (default ~/.subtracker)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging and raw error messages")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address, host:port")

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd, auth.LoginCmd, auth.LogoutCmd, auth.GuestCmd)

	rootCmd.AddCommand(sub.SubCmd)
	sub.SubCmd.AddCommand(sub.ListCmd, sub.AddCmd, sub.EditCmd, sub.DeleteCmd)

	rootCmd.AddCommand(sub.StatsCmd, tuiCmd)
}
