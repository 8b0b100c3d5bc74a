package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"rsafront/internal/app"
	"rsafront/internal/engine"
	"rsafront/internal/errors"

	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Encrypt a file with the RSA engine",
	Long: `Encrypt a file with the RSA engine.

The encrypted file and the key file are written next to the input as
<name>_encrypted.enc and <name>_keys.key. If either already exists, both
get the same numeric suffix (_1, _2, ...) so nothing is overwritten.

Keep the key file safe: it is needed to decrypt the file.

Examples:
  # Find the engine automatically
  rsafront encrypt report.pdf

  # Use a specific engine and allow more time
  rsafront encrypt -e ./build/rsa_encrypt --timeout 5m backup.tar`,
	Args: cobra.ExactArgs(1),
	RunE: runEncrypt,
}

// Encrypt flags
var encTimeout time.Duration

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().DurationVar(&encTimeout, "timeout", 0, "Encryption timeout (default engine.encrypt_timeout)")
}

// newController builds a controller for a terminal from the loaded config.
func newController(t *Terminal) *app.Controller {
	timeout := cfg.Engine.EncryptTimeout
	if encTimeout > 0 {
		timeout = encTimeout
	}
	return app.NewController(t.Presenter(), app.Options{
		Locator:        cfg.Locator(),
		EnginePath:     cfg.Engine.Path,
		ProbeTimeout:   cfg.Engine.ProbeTimeout,
		EncryptTimeout: timeout,
	})
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	input, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	t := newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), flagQuiet)
	ctrl := newController(t)

	if r := ctrl.Startup(cmd.Context()); r != engine.Ready {
		path, _ := ctrl.State().Engine()
		return readinessError(path, r)
	}
	ctrl.SelectFile(input)

	done, err := ctrl.Encrypt(cmd.Context())
	if err != nil {
		// Pre-flight failures were shown by the presenter.
		return shown(err)
	}
	out := <-done
	ctrl.Wait()

	if !out.OK() {
		return shown(out.Err)
	}
	if flagQuiet {
		t.Label("Encrypted file", out.Paths.Encrypted)
		t.Label("Key file", out.Paths.Key)
	}
	return nil
}

// readinessError maps a failed probe onto the error taxonomy.
func readinessError(path string, r engine.Readiness) error {
	var cause error
	switch r {
	case engine.NotFound:
		cause = errors.ErrEngineNotFound
	case engine.TimedOut:
		cause = errors.ErrTimeout
	case engine.TestFailed:
		cause = errors.ErrEngineFailed
	default:
		cause = errors.ErrOrchestrator
	}
	return errors.NewEngineError("probe", path, -1, fmt.Errorf("%w (%s)", cause, r.Label()))
}
