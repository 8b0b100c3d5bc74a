package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"rsafront/internal/engine"
	"rsafront/internal/errors"
	"rsafront/internal/fileops"
	"rsafront/internal/log"
)

// Dialog messages.
const (
	MsgInvalidInput  = "Please select a valid input file"
	MsgEngineMissing = "Encryption engine not found"
	MsgFailed        = "Encryption failed. Check output for details."
	MsgTimedOut      = "Encryption operation timed out"
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	// Runner spawns the engine. Defaults to engine.ExecRunner.
	Runner engine.Runner

	// Locator finds the engine when EnginePath is empty.
	Locator engine.Locator

	// EnginePath skips discovery when set.
	EnginePath string

	ProbeTimeout   time.Duration
	EncryptTimeout time.Duration
}

// Controller owns the State and drives the engine on behalf of a Presenter.
type Controller struct {
	state     *State
	presenter Presenter
	locator   engine.Locator
	override  string

	health *engine.HealthChecker
	orch   *engine.Orchestrator

	wg sync.WaitGroup
}

// NewController creates a Controller for p.
func NewController(p Presenter, opts Options) *Controller {
	runner := opts.Runner
	if runner == nil {
		runner = engine.ExecRunner{}
	}
	return &Controller{
		state:     NewState(),
		presenter: p,
		locator:   opts.Locator,
		override:  opts.EnginePath,
		health:    engine.NewHealthChecker(runner, opts.ProbeTimeout, directSink(p)),
		orch:      engine.NewOrchestrator(runner, opts.EncryptTimeout, marshalSink(p)),
	}
}

// State returns the controller's state.
func (c *Controller) State() *State {
	return c.state
}

// Startup picks the engine (the configured override, else discovery) and
// probes it.
func (c *Controller) Startup(ctx context.Context) engine.Readiness {
	path := c.override
	if path == "" {
		var found bool
		path, found = c.locator.Locate()
		log.Debug("engine discovery", log.String("path", path), log.Bool("found", found))
	}
	return c.SetEnginePath(ctx, path)
}

// SetEnginePath switches to the engine at path and probes it inline.
func (c *Controller) SetEnginePath(ctx context.Context, path string) engine.Readiness {
	c.state.SetEngine(path)
	c.presenter.SetEngine(path, EngineLabel(path, engine.Unknown), Info)

	r := c.health.Probe(ctx, path)
	if c.state.SetReadiness(path, r) {
		c.presenter.SetEngine(path, EngineLabel(path, r), EngineTone(r))
	}
	c.Refresh()
	return r
}

// SelectFile records path as the input file.
func (c *Controller) SelectFile(path string) {
	c.state.SetInputFile(path)
	if fileops.IsRegularFile(path) {
		c.presenter.AppendLine("Selected file: " + filepath.Base(path))
	}
	c.Refresh()
}

// Refresh pushes the current UIState to the presenter.
func (c *Controller) Refresh() {
	v := c.state.View()
	c.presenter.SetActionEnabled(v.ActionEnabled)
	c.presenter.SetStatus(v.Status, v.Tone)
}

// Encrypt starts encrypting the selected file in the background.
//
// It fails fast, spawning nothing, with errors.ErrBusy while another
// encryption is outstanding, with errors.ErrInvalidInput when no valid file is
// selected and with errors.ErrEngineNotFound when the engine file is missing.
// The last two also show an error dialog.
//
// The returned channel yields the Outcome once and is closed, after the
// presenter has been updated for it.
func (c *Controller) Encrypt(ctx context.Context) (<-chan engine.Outcome, error) {
	if !c.state.TryBegin() {
		return nil, errors.ErrBusy
	}

	input := c.state.Input()
	enginePath, _ := c.state.Engine()
	if !fileops.IsRegularFile(input) {
		c.state.End()
		c.presenter.ShowError(MsgInvalidInput)
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidInput, input)
	}
	if !fileops.IsRegularFile(enginePath) {
		c.state.End()
		c.presenter.ShowError(MsgEngineMissing)
		return nil, errors.NewEngineError("encrypt", enginePath, -1, errors.ErrEngineNotFound)
	}

	c.presenter.ClearLog()
	c.presenter.SetBusy(true)
	c.Refresh()

	done := make(chan engine.Outcome, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		out := c.orch.Encrypt(ctx, enginePath, input)
		c.presenter.Do(func() {
			c.finish(out)
			done <- out
			close(done)
		})
	}()
	return done, nil
}

// Wait blocks until no background encryption is running.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// finish resets the busy state and reports out. It runs on the interactive
// context.
func (c *Controller) finish(out engine.Outcome) {
	c.state.End()
	c.presenter.SetBusy(false)
	c.presenter.SetActionEnabled(Compute(c.state.Snapshot()).ActionEnabled)

	switch out.Kind {
	case engine.Success:
		c.presenter.SetStatus(StatusSucceeded, Success)
		c.presenter.ShowInfo("Success", fmt.Sprintf(
			"File encrypted successfully!\n\nEncrypted file: %s\nKey file: %s\n\nKeep the key file safe - you need it to decrypt!",
			filepath.Base(out.Paths.Encrypted), filepath.Base(out.Paths.Key)))
	case engine.EngineFailure:
		c.presenter.SetStatus(StatusFailed, Error)
		c.presenter.ShowError(MsgFailed)
	case engine.EncryptionTimeout:
		c.presenter.SetStatus(StatusTimedOut, Error)
		c.presenter.ShowError(MsgTimedOut)
	default:
		c.presenter.SetStatus(StatusErrored, Error)
		c.presenter.ShowError(fmt.Sprintf("Error during encryption: %v", out.Err))
	}
}
