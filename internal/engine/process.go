// Package engine drives the external RSA encryption executable.
//
// The engine is opaque: it is only ever reached through Runner, which spawns
// a process, waits for it under a timeout, and captures its exit code and
// output. On top of that this package provides:
//
//   - Locate: find the executable among the usual build locations
//   - HealthChecker: run it with no arguments and classify its Readiness
//   - Orchestrator: run "encrypt <in> <enc> <key>" and classify the Outcome
//
// Everything the user should see is written to a Sink, one line at a time,
// in the order the steps happen.
package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait keeps reading output after the engine was
// killed. A grandchild holding the pipes open must not stall the caller.
const waitDelay = 2 * time.Second

// Result is what one process run produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Runner runs an executable with arguments and waits for it.
//
// A non-zero exit status is not an error: it is reported in Result.ExitCode.
// When the timeout elapses the process is killed and Result.TimedOut is set.
// An error is returned only when the process could not be started or waited
// on at the OS level.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, path string, args ...string) (Result, error)
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, timeout time.Duration, path string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)

	err := cmd.Run()
	res := Result{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return res, nil
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
		return res, nil
	case ctx.Err() != nil:
		return res, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	// exec.ErrWaitDelay means the engine exited but left its pipes open;
	// the exit status is still valid.
	if errors.Is(err, exec.ErrWaitDelay) && res.ExitCode >= 0 {
		return res, nil
	}
	return res, err
}
