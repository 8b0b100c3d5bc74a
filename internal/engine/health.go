package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"rsafront/internal/fileops"
	"rsafront/internal/log"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// DefaultProbeTimeout bounds the no-argument health probe.
const DefaultProbeTimeout = 5 * time.Second

// Readiness is the classified result of a health probe.
type Readiness int

const (
	Unknown Readiness = iota
	Ready
	NotFound
	TestFailed
	TimedOut
	Error
)

func (r Readiness) String() string {
	switch r {
	case Unknown:
		return "unknown"
	case Ready:
		return "ready"
	case NotFound:
		return "not found"
	case TestFailed:
		return "test failed"
	case TimedOut:
		return "timed out"
	case Error:
		return "error"
	default:
		return "invalid"
	}
}

// Label is the engine status line shown next to the engine path.
func (r Readiness) Label() string {
	switch r {
	case Ready:
		return "Executable ready"
	case NotFound:
		return "Executable not found"
	case TimedOut:
		return "Executable timeout"
	case TestFailed, Error:
		return "Executable error"
	default:
		return "Checking executable..."
	}
}

// HealthChecker runs the engine with no arguments to see whether it is alive.
type HealthChecker struct {
	Runner  Runner
	Timeout time.Duration
	Sink    Sink
}

// NewHealthChecker creates a HealthChecker. A zero timeout means
// DefaultProbeTimeout.
func NewHealthChecker(runner Runner, timeout time.Duration, sink Sink) *HealthChecker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HealthChecker{Runner: runner, Timeout: timeout, Sink: sink}
}

// Probe classifies the engine at enginePath and appends one line to the sink.
//
// A path that is not an existing regular file yields NotFound without
// spawning anything. Otherwise the engine runs with no arguments: exit 0 or 1
// means Ready (the engine exits 1 after printing its usage), any other exit
// means TestFailed, an elapsed timeout means TimedOut and a spawn fault means
// Error.
func (h *HealthChecker) Probe(ctx context.Context, enginePath string) Readiness {
	sink := sinkOrDiscard(h.Sink)
	logger := log.GetLogger().WithFields(
		log.String("op", "probe"),
		log.String("id", uuid.NewString()),
		log.String("engine", enginePath),
	)

	if enginePath == "" {
		sink.AppendLine("Error: No executable specified")
		logger.Warn("probe skipped: empty path")
		return NotFound
	}
	if !fileops.IsRegularFile(enginePath) {
		sink.AppendLine(fmt.Sprintf("Error: Executable '%s' not found", enginePath))
		logger.Warn("probe skipped: not a regular file")
		return NotFound
	}
	logger.Debug("engine binary", log.String("format", BinaryFormat(enginePath)))

	start := time.Now()
	res, err := h.Runner.Run(ctx, h.Timeout, enginePath)
	logger = logger.WithFields(log.Duration("elapsed", time.Since(start)))

	switch {
	case err != nil:
		sink.AppendLine(fmt.Sprintf("Error testing executable: %v", err))
		logger.Error("probe spawn failed", log.Err(err))
		return Error
	case res.TimedOut:
		sink.AppendLine("Error: Executable test timed out")
		logger.Warn("probe timed out", log.Duration("timeout", h.Timeout))
		return TimedOut
	case res.ExitCode == 0 || res.ExitCode == 1:
		sink.AppendLine("✓ Engine executable found and runnable")
		logger.Info("probe ok", log.Int("exit", res.ExitCode))
		return Ready
	default:
		sink.AppendLine(fmt.Sprintf("Error: Executable test failed (exit code %d)", res.ExitCode))
		logger.Warn("probe failed", log.Int("exit", res.ExitCode), log.String("stderr", res.Stderr))
		return TestFailed
	}
}

// BinaryFormat sniffs the engine file's container format: "elf", "exe",
// "macho" and so on, "script" for a shebang file, or "unknown".
func BinaryFormat(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unreadable"
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "unreadable"
	}
	head = head[:n]

	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return kind.Extension
	}
	if bytes.HasPrefix(head, []byte("#!")) {
		return "script"
	}
	return "unknown"
}
