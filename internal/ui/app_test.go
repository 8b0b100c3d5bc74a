package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"rsafront/internal/app"
	"rsafront/internal/engine"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
)

// fakeEngine answers probes with its usage exit code and writes the outputs
// on encrypt.
type fakeEngine struct {
	mu       sync.Mutex
	encrypts int
	exitCode int
	block    chan struct{}
}

func (f *fakeEngine) Run(_ context.Context, _ time.Duration, _ string, args ...string) (engine.Result, error) {
	if len(args) == 0 {
		return engine.Result{ExitCode: 1, Stdout: "usage: rsa_encrypt encrypt <in> <enc> <key>"}, nil
	}
	f.mu.Lock()
	f.encrypts++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.exitCode != 0 {
		return engine.Result{ExitCode: f.exitCode, Stderr: "bad input"}, nil
	}
	os.WriteFile(args[2], []byte("ciphertext"), 0644)
	os.WriteFile(args[3], []byte("n=3233\ne=17\n"), 0644)
	return engine.Result{Stdout: "done"}, nil
}

// createTestApp builds a window around a fake engine and a file to encrypt.
func createTestApp(t *testing.T, runner engine.Runner) (a *App, enginePath, input string) {
	t.Helper()
	dir := t.TempDir()
	enginePath = filepath.Join(dir, "rsa_encrypt")
	input = filepath.Join(dir, "report.txt")
	for _, p := range []string{enginePath, input} {
		if err := os.WriteFile(p, []byte("x"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	a = New(test.NewApp(), "v1.0", app.Options{Runner: runner, EnginePath: enginePath})
	return a, enginePath, input
}

func waitOutcome(t *testing.T, done <-chan engine.Outcome) engine.Outcome {
	t.Helper()
	if done == nil {
		t.Fatal("encryption was not started")
	}
	select {
	case out := <-done:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("encryption did not finish")
	}
	return engine.Outcome{}
}

func logText(t *testing.T, a *App) string {
	t.Helper()
	s, err := a.logText.Get()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	a, _, _ := createTestApp(t, &fakeEngine{})

	if got := a.Window.Title(); got != "RSA File Encryption v1.0" {
		t.Errorf("Title = %q; want %q", got, "RSA File Encryption v1.0")
	}
	if !a.encryptBtn.Disabled() {
		t.Error("Encrypt button should start disabled")
	}
	if a.progress.Visible() {
		t.Error("Progress bar should start hidden")
	}
	if got := a.status.Text(); got != app.StatusWaiting {
		t.Errorf("Status = %q; want %q", got, app.StatusWaiting)
	}
}

func TestStart(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	t.Run("Ready", func(t *testing.T) {
		a, enginePath, _ := createTestApp(t, &fakeEngine{})
		a.Start()

		if a.engineEntry.Text != enginePath {
			t.Errorf("Engine entry = %q; want %q", a.engineEntry.Text, enginePath)
		}
		if got := a.engineStatus.Text(); got != "Executable ready" {
			t.Errorf("Engine status = %q; want %q", got, "Executable ready")
		}
		if a.indicator.tone != app.Success || !a.indicator.visible {
			t.Errorf("Indicator = %v/%v; want visible success", a.indicator.tone, a.indicator.visible)
		}
		if got := a.status.Text(); got != app.StatusSelectFile {
			t.Errorf("Status = %q; want %q", got, app.StatusSelectFile)
		}
		if !a.encryptBtn.Disabled() {
			t.Error("Encrypt button should stay disabled without a file")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		a := New(test.NewApp(), "v1.0", app.Options{
			Runner:     &fakeEngine{},
			EnginePath: filepath.Join(t.TempDir(), "rsa_encrypt"),
		})
		a.Start()

		if got := a.engineStatus.Text(); got != "Executable not found" {
			t.Errorf("Engine status = %q; want %q", got, "Executable not found")
		}
		if a.indicator.tone != app.Error {
			t.Errorf("Indicator tone = %v; want error", a.indicator.tone)
		}
	})
}

func TestSelectInput(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	a, _, input := createTestApp(t, &fakeEngine{})
	a.Start()
	a.selectInput(input)

	if a.inputEntry.Text != input {
		t.Errorf("Input entry = %q; want %q", a.inputEntry.Text, input)
	}
	if a.encryptBtn.Disabled() {
		t.Error("Encrypt button should be enabled")
	}
	if got := a.status.Text(); got != app.StatusReady {
		t.Errorf("Status = %q; want %q", got, app.StatusReady)
	}
	if got := logText(t, a); !strings.HasSuffix(got, "\nSelected file: report.txt") {
		t.Errorf("Log = %q; want it to end with the selection", got)
	}
}

func TestDrop(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	a, _, input := createTestApp(t, &fakeEngine{})
	a.Start()

	t.Run("FirstFileWins", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.txt")
		a.onDrop(fyne.NewPos(0, 0), []fyne.URI{storage.NewFileURI(input), storage.NewFileURI(other)})

		if got := a.ctrl.State().Input(); got != input {
			t.Errorf("Input = %q; want %q", got, input)
		}
		if !strings.Contains(logText(t, a), "Only one file") {
			t.Error("Expected a note about the extra files")
		}
	})

	t.Run("IgnoredWhileBusy", func(t *testing.T) {
		a.busy = true
		defer func() { a.busy = false }()

		a.onDrop(fyne.NewPos(0, 0), []fyne.URI{storage.NewFileURI("/elsewhere.txt")})
		if got := a.ctrl.State().Input(); got != input {
			t.Errorf("Input = %q; want %q", got, input)
		}
	})
}

func TestEncrypt(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	t.Run("Success", func(t *testing.T) {
		a, _, input := createTestApp(t, &fakeEngine{})
		a.Start()
		a.selectInput(input)

		out := waitOutcome(t, a.onClickEncrypt())
		if !out.OK() {
			t.Fatalf("Outcome = %v (%v); want success", out.Kind, out.Err)
		}
		if got := a.status.Text(); got != app.StatusSucceeded {
			t.Errorf("Status = %q; want %q", got, app.StatusSucceeded)
		}
		if a.progress.Visible() {
			t.Error("Progress bar should be hidden after completion")
		}
		if a.encryptBtn.Disabled() || a.inputEntry.Disabled() {
			t.Error("Controls should be enabled after completion")
		}
		text := logText(t, a)
		for _, want := range []string{"Starting encryption", "report_encrypted.enc", "e=17"} {
			if !strings.Contains(text, want) {
				t.Errorf("Log missing %q:\n%s", want, text)
			}
		}
		if strings.Contains(text, "Selected file") {
			t.Error("Log should be cleared when encryption starts")
		}
		if a.Window.Canvas().Overlays().Top() == nil {
			t.Error("Expected a success dialog")
		}
	})

	t.Run("TypedPath", func(t *testing.T) {
		a, _, input := createTestApp(t, &fakeEngine{})
		a.Start()
		a.inputEntry.SetText(input)

		out := waitOutcome(t, a.onClickEncrypt())
		if !out.OK() {
			t.Fatalf("Outcome = %v; want success", out.Kind)
		}
	})

	t.Run("EngineFailure", func(t *testing.T) {
		a, _, input := createTestApp(t, &fakeEngine{exitCode: 2})
		a.Start()
		a.selectInput(input)

		out := waitOutcome(t, a.onClickEncrypt())
		if out.Kind != engine.EngineFailure {
			t.Errorf("Outcome = %v; want engine failure", out.Kind)
		}
		if got := a.status.Text(); got != app.StatusFailed {
			t.Errorf("Status = %q; want %q", got, app.StatusFailed)
		}
		if !strings.Contains(logText(t, a), "bad input") {
			t.Error("Log should contain the engine's error output")
		}
	})

	t.Run("NoInput", func(t *testing.T) {
		runner := &fakeEngine{}
		a, _, _ := createTestApp(t, runner)
		a.Start()

		if done := a.onClickEncrypt(); done != nil {
			t.Error("Encryption should not start without a file")
		}
		if runner.encrypts != 0 {
			t.Errorf("encrypts = %d; want 0", runner.encrypts)
		}
		if a.Window.Canvas().Overlays().Top() == nil {
			t.Error("Expected an error dialog")
		}
	})

	t.Run("Busy", func(t *testing.T) {
		runner := &fakeEngine{block: make(chan struct{})}
		a, _, input := createTestApp(t, runner)
		a.Start()
		a.selectInput(input)

		done := a.onClickEncrypt()
		if done == nil {
			t.Fatal("encryption was not started")
		}
		if !a.progress.Visible() || !a.encryptBtn.Disabled() || !a.inputBrowse.Disabled() {
			t.Error("Busy window should show progress and lock its controls")
		}
		if got := a.status.Text(); got != app.StatusEncrypting {
			t.Errorf("Status = %q; want %q", got, app.StatusEncrypting)
		}
		if again := a.onClickEncrypt(); again != nil {
			t.Error("Second encryption should be rejected while busy")
		}

		close(runner.block)
		waitOutcome(t, done)
		if runner.encrypts != 1 {
			t.Errorf("encrypts = %d; want 1", runner.encrypts)
		}
	})
}

func TestWidgets(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	t.Run("ReadinessIndicator", func(t *testing.T) {
		r := NewReadinessIndicator()
		if r.visible {
			t.Error("Indicator should start hidden")
		}
		r.SetTone(app.Warning)
		if !r.visible || r.tone != app.Warning {
			t.Errorf("Indicator = %v/%v; want visible warning", r.visible, r.tone)
		}
		r.SetVisible(false)
		if r.visible {
			t.Error("Indicator should be hidden")
		}
		if r.MinSize().Width <= 0 {
			t.Error("MinSize should be positive")
		}
	})

	t.Run("ColoredLabel", func(t *testing.T) {
		l := NewColoredLabel("a", app.Info.Color())
		l.Set("b", app.Error)
		if l.Text() != "b" || l.color != app.Error.Color() {
			t.Errorf("Label = %q/%v; want b/error color", l.Text(), l.color)
		}
	})

	t.Run("DisabledEntry", func(t *testing.T) {
		e := NewDisabledEntry()
		e.SetText("/opt/rsa_encrypt")
		if !e.Disabled() || e.Text != "/opt/rsa_encrypt" {
			t.Errorf("Entry = %v/%q; want disabled with text", e.Disabled(), e.Text)
		}
	})
}
