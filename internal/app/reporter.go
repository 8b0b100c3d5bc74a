package app

import (
	"sync"

	"rsafront/internal/engine"
)

// Presenter is the front-end the Controller drives.
//
// All methods except Do are called on the interactive context. Background
// work reaches the presenter only through Do, which must run fn on that
// context and preserve submission order.
type Presenter interface {
	// AppendLine adds one line to the user log.
	AppendLine(line string)
	// ClearLog empties the user log.
	ClearLog()
	// SetActionEnabled enables or disables the encrypt action.
	SetActionEnabled(enabled bool)
	// SetStatus updates the main status line.
	SetStatus(text string, tone Tone)
	// SetEngine updates the engine path display and its status label.
	SetEngine(path, label string, tone Tone)
	// SetBusy starts or stops the progress indicator.
	SetBusy(busy bool)
	// ShowInfo shows a blocking information dialog.
	ShowInfo(title, message string)
	// ShowError shows a blocking error dialog.
	ShowError(message string)
	// Do runs fn on the interactive context.
	Do(fn func())
}

// Ensure CallbackPresenter implements Presenter
var _ Presenter = (*CallbackPresenter)(nil)

// CallbackPresenter is a Presenter built from optional callbacks. Nil
// callbacks are skipped. Do runs fn synchronously, serialized by a mutex, so
// it suits front-ends without an event loop of their own.
type CallbackPresenter struct {
	mu sync.Mutex

	OnLine    func(line string)
	OnClear   func()
	OnEnabled func(enabled bool)
	OnStatus  func(text string, tone Tone)
	OnEngine  func(path, label string, tone Tone)
	OnBusy    func(busy bool)
	OnInfo    func(title, message string)
	OnError   func(message string)
}

// AppendLine implements Presenter.
func (p *CallbackPresenter) AppendLine(line string) {
	if p.OnLine != nil {
		p.OnLine(line)
	}
}

// ClearLog implements Presenter.
func (p *CallbackPresenter) ClearLog() {
	if p.OnClear != nil {
		p.OnClear()
	}
}

// SetActionEnabled implements Presenter.
func (p *CallbackPresenter) SetActionEnabled(enabled bool) {
	if p.OnEnabled != nil {
		p.OnEnabled(enabled)
	}
}

// SetStatus implements Presenter.
func (p *CallbackPresenter) SetStatus(text string, tone Tone) {
	if p.OnStatus != nil {
		p.OnStatus(text, tone)
	}
}

// SetEngine implements Presenter.
func (p *CallbackPresenter) SetEngine(path, label string, tone Tone) {
	if p.OnEngine != nil {
		p.OnEngine(path, label, tone)
	}
}

// SetBusy implements Presenter.
func (p *CallbackPresenter) SetBusy(busy bool) {
	if p.OnBusy != nil {
		p.OnBusy(busy)
	}
}

// ShowInfo implements Presenter.
func (p *CallbackPresenter) ShowInfo(title, message string) {
	if p.OnInfo != nil {
		p.OnInfo(title, message)
	}
}

// ShowError implements Presenter.
func (p *CallbackPresenter) ShowError(message string) {
	if p.OnError != nil {
		p.OnError(message)
	}
}

// Do implements Presenter.
func (p *CallbackPresenter) Do(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// directSink appends straight to the presenter. Only for code already on the
// interactive context.
func directSink(p Presenter) engine.Sink {
	return engine.SinkFunc(p.AppendLine)
}

// marshalSink hands every line to the presenter through Do.
func marshalSink(p Presenter) engine.Sink {
	return engine.SinkFunc(func(line string) {
		p.Do(func() { p.AppendLine(line) })
	})
}
