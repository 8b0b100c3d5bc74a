package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rsafront/internal/config"
	"rsafront/internal/errors"

	"github.com/spf13/cobra"
)

// Version is set by main.go
var Version = "dev"

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "rsafront",
	Short: "Front-end for an external RSA file-encryption engine",
	Long: `rsafront drives a separate RSA encryption executable (rsa_encrypt).

It finds the engine next to the program (build/, src/ or the working
directory), checks that it runs, and invokes

  rsa_encrypt encrypt <input> <name>_encrypted.enc <name>_keys.key

choosing output names that never overwrite existing files.

Run without arguments to open the desktop window.`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Global flags
var (
	flagEngine string
	flagConfig string
	flagDebug  bool
	flagQuiet  bool
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

// subcommands decides whether the arguments are meant for the CLI.
var subcommands = map[string]bool{
	"encrypt": true, "probe": true, "locate": true, "paths": true,
	"help": true, "--help": true, "-h": true,
	"version": true, "--version": true, "-v": true,
}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	// Check if we're in CLI mode (have subcommands)
	if len(os.Args) < 2 || !subcommands[os.Args[1]] {
		return false
	}

	// Ctrl+C kills a running engine; the run then reports an error.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
	return true
}

// run executes args and prints any error not already shown to the user.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !isShown(err) {
		newTerminal(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), false).Error(err.Error())
	}
	return err
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := c.SetupLogging(flagDebug); err != nil {
		return err
	}
	if flagEngine != "" {
		c.Engine.Path = flagEngine
	}
	cfg = c
	return nil
}

// shownError marks an error the presenter has already displayed.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

func isShown(err error) bool {
	var s *shownError
	return errors.As(err, &s)
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&flagEngine, "engine", "e", "", "Path to the rsa_encrypt engine (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", fmt.Sprintf("Config file (default %s.yaml in . or the user config dir)", config.Name))
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors and results")
}
