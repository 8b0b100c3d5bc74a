// Package cli provides the command-line interface of rsafront.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"rsafront/internal/app"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Terminal prints the controller's output. The user log goes to out; status,
// engine and dialog messages go to errOut. On a terminal the status line is
// redrawn in place and colored by tone.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	quiet    bool
	tty      bool
	busy     bool
	lastLine int // Length of last status line (for clearing)

	tones map[app.Tone]*color.Color
	bold  *color.Color
}

// newTerminal creates a Terminal. Colors and the in-place status line are
// only used when errOut is a terminal.
func newTerminal(out, errOut io.Writer, quiet bool) *Terminal {
	t := &Terminal{
		out:    out,
		errOut: errOut,
		quiet:  quiet,
		tty:    isTerminal(errOut),
		tones: map[app.Tone]*color.Color{
			app.Info:    color.New(color.FgCyan),
			app.Warning: color.New(color.FgYellow),
			app.Success: color.New(color.FgGreen, color.Bold),
			app.Error:   color.New(color.FgRed, color.Bold),
		},
		bold: color.New(color.Bold),
	}
	for _, c := range t.tones {
		t.setColor(c)
	}
	t.setColor(t.bold)
	return t
}

func (t *Terminal) setColor(c *color.Color) {
	if t.tty {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Presenter adapts the terminal to the controller.
func (t *Terminal) Presenter() *app.CallbackPresenter {
	return &app.CallbackPresenter{
		OnLine:   t.Line,
		OnStatus: t.Status,
		OnEngine: t.Engine,
		OnBusy:   t.Busy,
		OnInfo:   t.Info,
		OnError:  t.Error,
	}
}

// Line prints one user log line.
func (t *Terminal) Line(line string) {
	if t.quiet {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	fmt.Fprintln(t.out, line)
}

// Status redraws the status line. Only shown on a terminal.
func (t *Terminal) Status(text string, tone app.Tone) {
	if t.quiet || !t.tty {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	prefix := "  "
	if t.busy {
		prefix = "… "
	}
	line := "\r" + prefix + text
	// Clear previous line if it was longer
	if len(line) < t.lastLine {
		line += strings.Repeat(" ", t.lastLine-len(line))
	}
	t.lastLine = len(line)
	t.tones[tone].Fprint(t.errOut, line)
}

// Engine prints the engine path and its status label.
func (t *Terminal) Engine(path, label string, tone app.Tone) {
	if t.quiet || tone == app.Info {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	if path == "" {
		path = "(none)"
	}
	fmt.Fprintf(t.errOut, "Engine: %s ", path)
	t.tones[tone].Fprintln(t.errOut, "["+label+"]")
}

// Busy records whether an encryption is running.
func (t *Terminal) Busy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = busy
}

// Info prints a titled message.
func (t *Terminal) Info(title, message string) {
	if t.quiet {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	t.tones[app.Success].Fprintln(t.errOut, title)
	fmt.Fprintln(t.errOut, message)
}

// Error prints an error message. Errors are shown even when quiet.
func (t *Terminal) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	t.tones[app.Error].Fprint(t.errOut, "Error: ")
	fmt.Fprintln(t.errOut, message)
}

// Result prints a command's result to out, even when quiet.
func (t *Terminal) Result(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	fmt.Fprintf(t.out, format+"\n", args...)
}

// Label prints a bold label and value to out, even when quiet.
func (t *Terminal) Label(label, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearStatusLocked()
	t.bold.Fprint(t.out, label+": ")
	fmt.Fprintln(t.out, value)
}

// clearStatusLocked moves past the status line before printing.
func (t *Terminal) clearStatusLocked() {
	if t.lastLine > 0 {
		fmt.Fprint(t.errOut, "\r"+strings.Repeat(" ", t.lastLine)+"\r")
		t.lastLine = 0
	}
}
