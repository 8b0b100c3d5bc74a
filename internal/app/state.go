// Package app owns the front-end's mutable facts and turns them into what the
// user sees.
//
// This package serves three purposes:
//
//  1. State (state.go):
//     State holds the engine path, the selected input file, the engine's
//     Readiness and the busy flag behind a sync.RWMutex. Compute derives the
//     action gate and status line from an immutable Snapshot of those facts.
//
//  2. Presentation contract (reporter.go):
//     Presenter is everything the controller needs from a front-end: a log,
//     one action control, a status line, dialogs and a way to marshal work
//     back onto the interactive context.
//
//  3. Controller (controller.go):
//     Controller locates and probes the engine, tracks file selection and
//     runs at most one encryption at a time in the background.
//
// The GUI (internal/ui) and CLI (internal/cli) are both Presenters; neither
// touches the engine directly.
package app

import (
	"image/color"
	"sync"

	"rsafront/internal/engine"
	"rsafront/internal/fileops"
	"rsafront/internal/util"
)

// Tone is the severity of a status line.
type Tone int

const (
	Info Tone = iota
	Warning
	Success
	Error
)

func (t Tone) String() string {
	switch t {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "invalid"
	}
}

// Color is the tone's foreground color.
func (t Tone) Color() color.RGBA {
	switch t {
	case Warning:
		return util.YELLOW
	case Success:
		return util.GREEN
	case Error:
		return util.RED
	default:
		return util.BLUE
	}
}

// Status lines.
const (
	StatusReady        = "Ready to encrypt!"
	StatusSelectFile   = "Please select a file to encrypt"
	StatusWaiting      = "Waiting for executable..."
	StatusEncrypting   = "Encrypting file..."
	StatusSucceeded    = "Encryption completed successfully!"
	StatusFailed       = "Encryption failed"
	StatusTimedOut     = "Encryption timed out"
	StatusErrored      = "Encryption error"
	StatusNoExecutable = "No executable specified"
)

// Snapshot is the pair of facts the action gate depends on.
type Snapshot struct {
	Readiness engine.Readiness
	FileValid bool
}

// UIState is the derived look of the action control and status line.
type UIState struct {
	ActionEnabled bool
	Status        string
	Tone          Tone
}

// Encrypting is the UIState while an encryption is outstanding. It overrides
// whatever Compute returns.
var Encrypting = UIState{ActionEnabled: false, Status: StatusEncrypting, Tone: Info}

// Compute derives the UIState for s. The action is enabled only when the
// engine is Ready and the input file is valid.
func Compute(s Snapshot) UIState {
	switch {
	case s.Readiness != engine.Ready:
		return UIState{ActionEnabled: false, Status: StatusWaiting, Tone: Warning}
	case !s.FileValid:
		return UIState{ActionEnabled: false, Status: StatusSelectFile, Tone: Info}
	default:
		return UIState{ActionEnabled: true, Status: StatusReady, Tone: Success}
	}
}

// EngineTone is the tone of the engine status label.
func EngineTone(r engine.Readiness) Tone {
	switch r {
	case engine.Ready:
		return Success
	case engine.Unknown:
		return Info
	default:
		return Error
	}
}

// EngineLabel is the engine status label for path at readiness r.
func EngineLabel(path string, r engine.Readiness) string {
	if path == "" {
		return StatusNoExecutable
	}
	return r.Label()
}

// State holds the controller's mutable facts.
type State struct {
	mu sync.RWMutex

	EnginePath string
	InputFile  string
	Readiness  engine.Readiness
	Busy       bool
}

// NewState creates a State with an Unknown engine and no input.
func NewState() *State {
	return &State{Readiness: engine.Unknown}
}

// Snapshot captures the readiness and checks the input file on disk.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Readiness: s.Readiness,
		FileValid: fileops.IsRegularFile(s.InputFile),
	}
}

// View is Compute of the current Snapshot, with the busy override applied.
func (s *State) View() UIState {
	snap := s.Snapshot()
	if s.IsBusy() {
		return Encrypting
	}
	return Compute(snap)
}

// SetEngine replaces the engine path and resets readiness to Unknown.
func (s *State) SetEngine(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EnginePath = path
	s.Readiness = engine.Unknown
}

// SetReadiness records a probe result for path. It is dropped when the
// engine path changed while the probe ran.
func (s *State) SetReadiness(path string, r engine.Readiness) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnginePath != path {
		return false
	}
	s.Readiness = r
	return true
}

// SetInputFile replaces the selected input file.
func (s *State) SetInputFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InputFile = path
}

// Engine returns the engine path and its readiness.
func (s *State) Engine() (string, engine.Readiness) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.EnginePath, s.Readiness
}

// Input returns the selected input file.
func (s *State) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.InputFile
}

// IsBusy reports whether an encryption is outstanding.
func (s *State) IsBusy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Busy
}

// TryBegin marks the state busy. It returns false if it already was.
func (s *State) TryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Busy {
		return false
	}
	s.Busy = true
	return true
}

// End clears the busy flag.
func (s *State) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Busy = false
}
