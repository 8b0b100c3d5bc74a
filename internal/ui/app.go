// Package ui provides the rsafront desktop window using Fyne.
//
// The window shows the engine path and its readiness, the file to encrypt,
// the encrypt button with an activity bar, the engine's output and a status
// line. App implements app.Presenter: every change on screen comes from the
// Controller, and the encryption itself runs in the Controller's goroutine
// with its results marshalled back through fyne.Do.
package ui

import (
	"context"
	"strings"

	"rsafront/internal/app"
	"rsafront/internal/engine"
	"rsafront/internal/errors"
	"rsafront/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Title is shown above the controls.
const Title = "RSA File Encryption Tool"

// App represents the main UI application.
type App struct {
	fyneApp fyne.App
	Window  fyne.Window
	Version string

	ctrl *app.Controller

	// ctx is cancelled when the window goes away, which kills a running engine.
	ctx    context.Context
	cancel context.CancelFunc

	engineEntry  *DisabledEntry
	engineBrowse *TooltipButton
	indicator    *ReadinessIndicator
	engineStatus *ColoredLabel
	inputEntry   *widget.Entry
	inputBrowse  *TooltipButton
	encryptBtn   *widget.Button
	progress     *widget.ProgressBarInfinite
	logView      *widget.Label
	logScroll    *container.Scroll
	status       *ColoredLabel

	// Output lines, bound to logView
	lines   []string
	logText binding.String

	busy bool
}

var _ app.Presenter = (*App)(nil)

// New creates the main window on fa. The engine is not probed until Start.
func New(fa fyne.App, version string, opts app.Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		fyneApp: fa,
		Version: version,
		ctx:     ctx,
		cancel:  cancel,
		logText: binding.NewString(),
	}
	a.ctrl = app.NewController(a, opts)

	fa.Settings().SetTheme(NewTheme())
	a.Window = fa.NewWindow("RSA File Encryption " + version)
	a.Window.Resize(fyne.NewSize(700, 600))
	a.Window.SetContent(a.build())
	a.Window.SetOnDropped(a.onDrop)
	a.Window.SetCloseIntercept(a.onClose)

	a.ctrl.Refresh()
	return a
}

// Start finds and probes the engine.
func (a *App) Start() {
	r := a.ctrl.Startup(a.ctx)
	log.Info("engine checked", log.String("readiness", r.String()))
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.fyneApp.Lifecycle().SetOnStarted(a.Start)
	a.Window.ShowAndRun()
	a.cancel()
}

func (a *App) build() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText

	// Engine
	a.engineEntry = NewDisabledEntry()
	a.engineEntry.SetPlaceHolder(app.StatusNoExecutable)
	a.engineBrowse = NewTooltipButton("Browse", "Choose the "+engine.ExecutableName+" executable", a.browseEngine)
	a.indicator = NewReadinessIndicator()
	a.engineStatus = NewColoredLabel(app.StatusNoExecutable, app.Info.Color())
	engineSection := container.NewVBox(
		widget.NewLabelWithStyle("RSA Executable:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, a.engineBrowse, a.engineEntry),
		container.NewHBox(a.indicator, a.engineStatus),
	)

	// Input
	a.inputEntry = widget.NewEntry()
	a.inputEntry.SetPlaceHolder("Choose a file or drop one on this window")
	a.inputEntry.OnSubmitted = func(text string) {
		a.ctrl.SelectFile(strings.TrimSpace(text))
	}
	a.inputBrowse = NewTooltipButton("Browse", "Choose the file to encrypt", a.browseInput)
	inputSection := container.NewVBox(
		widget.NewLabelWithStyle("Select File to Encrypt:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, a.inputBrowse, a.inputEntry),
	)

	a.encryptBtn = widget.NewButtonWithIcon("Encrypt File", theme.ConfirmIcon(), func() {
		a.onClickEncrypt()
	})
	a.encryptBtn.Importance = widget.HighImportance
	a.encryptBtn.Disable()

	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()

	// Output
	a.logView = widget.NewLabelWithData(a.logText)
	a.logView.Wrapping = fyne.TextWrapWord
	a.logView.TextStyle = fyne.TextStyle{Monospace: true}
	a.logView.Selectable = true
	a.logScroll = container.NewVScroll(a.logView)

	a.status = NewColoredLabel("", app.Info.Color())
	a.status.bold = true

	top := container.NewVBox(
		title,
		engineSection,
		widget.NewSeparator(),
		inputSection,
		a.encryptBtn,
		a.progress,
		widget.NewLabelWithStyle("Output:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	return container.NewPadded(container.NewBorder(top, a.status, nil, nil, a.logScroll))
}

// onClickEncrypt starts an encryption of the file in the input entry. It
// returns the outcome channel, or nil when nothing was started.
func (a *App) onClickEncrypt() <-chan engine.Outcome {
	if text := strings.TrimSpace(a.inputEntry.Text); text != a.ctrl.State().Input() {
		a.ctrl.SelectFile(text)
	}
	done, err := a.ctrl.Encrypt(a.ctx)
	if err != nil {
		log.Debug("encryption not started", log.Err(err))
		return nil
	}
	return done
}

// selectInput shows path in the input entry and selects it.
func (a *App) selectInput(path string) {
	a.inputEntry.SetText(path)
	a.ctrl.SelectFile(path)
}

// onDrop selects the first dropped file.
func (a *App) onDrop(_ fyne.Position, uris []fyne.URI) {
	if a.busy || len(uris) == 0 {
		return
	}
	if len(uris) > 1 {
		a.AppendLine("Only one file can be encrypted at a time, using the first")
	}
	a.selectInput(uris[0].Path())
}

// onClose asks before closing while an encryption is running.
func (a *App) onClose() {
	if !a.busy {
		a.cancel()
		a.Window.Close()
		return
	}
	dialog.ShowConfirm("Encryption running",
		"An encryption is still running. Stop it and quit?",
		func(quit bool) {
			if quit {
				a.cancel()
				a.Window.Close()
			}
		}, a.Window)
}

// AppendLine implements app.Presenter.
func (a *App) AppendLine(line string) {
	a.lines = append(a.lines, line)
	_ = a.logText.Set(strings.Join(a.lines, "\n"))
	a.logScroll.ScrollToBottom()
}

// ClearLog implements app.Presenter.
func (a *App) ClearLog() {
	a.lines = nil
	_ = a.logText.Set("")
}

// SetActionEnabled implements app.Presenter.
func (a *App) SetActionEnabled(enabled bool) {
	if enabled {
		a.encryptBtn.Enable()
	} else {
		a.encryptBtn.Disable()
	}
}

// SetStatus implements app.Presenter.
func (a *App) SetStatus(text string, tone app.Tone) {
	a.status.Set(text, tone)
}

// SetEngine implements app.Presenter.
func (a *App) SetEngine(path, label string, tone app.Tone) {
	a.engineEntry.SetText(path)
	a.engineStatus.Set(label, tone)
	a.indicator.SetTone(tone)
}

// SetBusy implements app.Presenter. Pickers are locked while busy.
func (a *App) SetBusy(busy bool) {
	a.busy = busy
	if busy {
		a.progress.Show()
		a.progress.Start()
		a.engineBrowse.Disable()
		a.inputBrowse.Disable()
		a.inputEntry.Disable()
		return
	}
	a.progress.Stop()
	a.progress.Hide()
	a.engineBrowse.Enable()
	a.inputBrowse.Enable()
	a.inputEntry.Enable()
}

// ShowInfo implements app.Presenter.
func (a *App) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, a.Window)
}

// ShowError implements app.Presenter.
func (a *App) ShowError(message string) {
	dialog.ShowError(errors.New(message), a.Window)
}

// Do implements app.Presenter.
func (a *App) Do(fn func()) {
	fyne.Do(fn)
}
