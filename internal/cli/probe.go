package cli

import (
	"fmt"
	"path/filepath"

	"rsafront/internal/engine"
	"rsafront/internal/errors"
	"rsafront/internal/fileops"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the engine runs",
	Long: `Find the engine and run it once without arguments.

An engine that prints its usage and exits with code 0 or 1 is ready.
The exit status of this command is 0 only when the engine is ready.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagQuiet)
		ctrl := newController(t)

		r := ctrl.Startup(cmd.Context())
		path, _ := ctrl.State().Engine()
		t.Label("Engine", path)
		t.Label("Status", r.Label())
		if r != engine.Ready {
			return readinessError(path, r)
		}
		if format := engine.BinaryFormat(path); format != "unknown" {
			t.Label("Format", format)
		}
		return nil
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print where the engine would be found",
	Long: `Search the usual build locations for the engine and print the first match.

Candidates from engine.candidates are tried first. If nothing is found the
platform default name is printed and the command fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagQuiet)

		path, found := cfg.Locator().Locate()
		t.Result("%s", path)
		if !found {
			return errors.NewEngineError("locate", path, -1, errors.ErrEngineNotFound)
		}
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths <file>",
	Short: "Print the output paths an encryption of file would use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagQuiet)

		input, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		paths, err := fileops.GenerateOutputPaths(input)
		if err != nil {
			return err
		}
		t.Label("Encrypted file", paths.Encrypted)
		t.Label("Key file", paths.Key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd, locateCmd, pathsCmd)
}
