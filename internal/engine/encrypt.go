package engine

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rsafront/internal/errors"
	"rsafront/internal/fileops"
	"rsafront/internal/log"
	"rsafront/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// DefaultEncryptTimeout bounds one encryption run.
const DefaultEncryptTimeout = 60 * time.Second

// SubcommandEncrypt is the engine's first positional argument for encryption.
const SubcommandEncrypt = "encrypt"

// Key information block delimiters in the user log.
const (
	KeyBlockStart = "--- RSA Key Information ---"
	KeyBlockEnd   = "--- End of Key Information ---"
)

// OutcomeKind classifies one encryption run.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	EngineFailure
	EncryptionTimeout
	PathGenerationError
	OrchestratorError
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case EngineFailure:
		return "engine failure"
	case EncryptionTimeout:
		return "timeout"
	case PathGenerationError:
		return "path generation error"
	case OrchestratorError:
		return "orchestrator error"
	default:
		return "invalid"
	}
}

// Outcome is everything one encryption run produced.
type Outcome struct {
	ID      string
	Kind    OutcomeKind
	Paths   fileops.OutputPaths
	Result  Result
	Elapsed time.Duration

	// Err is nil only for Success.
	Err error

	// KeyText is the key file's content after a successful run. KeyErr is
	// set instead when it could not be read; the run is still a Success.
	KeyText string
	KeyErr  error

	// Checksum is the BLAKE2b-256 of the encrypted file, hex encoded,
	// or empty when it could not be computed.
	Checksum string
}

// OK reports whether the engine produced both files.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Orchestrator runs the engine's encrypt subcommand.
type Orchestrator struct {
	Runner  Runner
	Timeout time.Duration
	Sink    Sink
}

// NewOrchestrator creates an Orchestrator. A zero timeout means
// DefaultEncryptTimeout.
func NewOrchestrator(runner Runner, timeout time.Duration, sink Sink) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultEncryptTimeout
	}
	return &Orchestrator{Runner: runner, Timeout: timeout, Sink: sink}
}

// Encrypt runs "<engine> encrypt <input> <encrypted> <key>" with freshly
// generated output paths and classifies the result.
//
// The planned file names are logged before the engine is spawned. On exit 0
// the key file is read back and logged between KeyBlockStart and KeyBlockEnd;
// a failed readback only logs a warning.
func (o *Orchestrator) Encrypt(ctx context.Context, enginePath, inputPath string) Outcome {
	sink := sinkOrDiscard(o.Sink)
	out := Outcome{ID: uuid.NewString()}
	logger := log.GetLogger().WithFields(
		log.String("op", "encrypt"),
		log.String("id", out.ID),
		log.String("engine", enginePath),
	)
	start := time.Now()
	defer func() {
		logger.Info("encrypt finished",
			log.String("outcome", out.Kind.String()),
			log.Int("exit", out.Result.ExitCode),
			log.Duration("elapsed", time.Since(start)),
		)
	}()

	paths, err := fileops.GenerateOutputPaths(inputPath)
	if err != nil {
		sink.AppendLine(fmt.Sprintf("❌ Error during encryption: %v", err))
		out.Kind = PathGenerationError
		out.Err = err
		return out
	}
	out.Paths = paths

	args := []string{SubcommandEncrypt, inputPath, paths.Encrypted, paths.Key}
	logger.Debug("spawning engine", log.Strings("args", args))

	sink.AppendLine("🔄 Starting encryption...")
	sink.AppendLine("Input: " + describeInput(inputPath))
	sink.AppendLine("Output: " + filepath.Base(paths.Encrypted))
	sink.AppendLine("Keys: " + filepath.Base(paths.Key))
	sink.AppendLine("")

	res, err := o.Runner.Run(ctx, o.Timeout, enginePath, args...)
	out.Result = res
	out.Elapsed = time.Since(start)

	if err != nil {
		sink.AppendLine(fmt.Sprintf("❌ Error during encryption: %v", err))
		out.Kind = OrchestratorError
		out.Err = errors.NewEngineError("encrypt", enginePath, -1, fmt.Errorf("%w: %w", errors.ErrOrchestrator, err))
		return out
	}
	if res.TimedOut {
		sink.AppendLine("❌ Encryption timed out")
		out.Kind = EncryptionTimeout
		out.Err = errors.NewEngineError("encrypt", enginePath, -1, fmt.Errorf("%w after %s", errors.ErrTimeout, o.Timeout))
		return out
	}

	if s := strings.TrimSpace(res.Stdout); s != "" {
		sink.AppendLine("--- Encryption Results ---")
		sink.AppendLine(s)
	}
	if s := strings.TrimSpace(res.Stderr); s != "" {
		sink.AppendLine("--- Error Output ---")
		sink.AppendLine(s)
	}

	if res.ExitCode != 0 {
		sink.AppendLine(fmt.Sprintf("❌ Encryption failed! (exit code %d)", res.ExitCode))
		out.Kind = EngineFailure
		out.Err = errors.NewEngineError("encrypt", enginePath, res.ExitCode, errors.ErrEngineFailed)
		return out
	}

	out.Kind = Success
	sink.AppendLine("")
	sink.AppendLine("🎉 SUCCESS! File encrypted successfully!")
	sink.AppendLine("📁 Encrypted file: " + paths.Encrypted)
	sink.AppendLine("🔑 Key file: " + paths.Key)
	if sum, err := checksum(paths.Encrypted); err == nil {
		out.Checksum = sum
		sink.AppendLine("🔏 BLAKE2b-256: " + sum)
	} else {
		logger.Warn("checksum failed", log.Err(err))
	}
	sink.AppendLine(fmt.Sprintf("⏱ Completed in %s", util.Elapsed(out.Elapsed)))
	sink.AppendLine("")
	sink.AppendLine("⚠️  IMPORTANT: Keep the key file safe! You need it to decrypt the file.")

	out.KeyText, out.KeyErr = readKeyFile(sink, paths.Key)
	if out.KeyErr != nil {
		logger.Warn("key readback failed", log.Err(out.KeyErr))
	}
	return out
}

// readKeyFile logs the key file's full text between the key block
// delimiters. Failure is logged as a warning and returned, never escalated.
func readKeyFile(sink Sink, keyPath string) (string, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		sink.AppendLine(fmt.Sprintf("Could not read key file: %v", err))
		return "", fmt.Errorf("%w: %w", errors.ErrKeyReadback, errors.NewFileError("read", keyPath, err))
	}
	text := strings.TrimSpace(string(data))
	sink.AppendLine(KeyBlockStart)
	sink.AppendLine(text)
	sink.AppendLine(KeyBlockEnd)
	return text, nil
}

// describeInput renders "name (size)", or just the name if stat fails.
func describeInput(path string) string {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, util.Sizeify(info.Size()))
}

func checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
