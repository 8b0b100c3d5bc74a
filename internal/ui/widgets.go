package ui

import (
	"image/color"

	"rsafront/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ReadinessIndicator is a small circle next to the engine status, colored by
// the engine's tone. A filled circle means the engine is ready; an outline
// means it is still being checked or has a problem.
type ReadinessIndicator struct {
	widget.BaseWidget
	tone    app.Tone
	visible bool
}

// NewReadinessIndicator creates a hidden indicator.
func NewReadinessIndicator() *ReadinessIndicator {
	r := &ReadinessIndicator{}
	r.ExtendBaseWidget(r)
	return r
}

// SetTone shows the indicator in the color of tone.
func (r *ReadinessIndicator) SetTone(tone app.Tone) {
	r.tone = tone
	r.visible = true
	r.Refresh()
}

// SetVisible sets whether the indicator should be visible.
func (r *ReadinessIndicator) SetVisible(visible bool) {
	r.visible = visible
	r.Refresh()
}

// MinSize returns the minimum size of the indicator.
func (r *ReadinessIndicator) MinSize() fyne.Size {
	return fyne.NewSize(20, 20)
}

// CreateRenderer creates the renderer for the widget.
func (r *ReadinessIndicator) CreateRenderer() fyne.WidgetRenderer {
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeWidth = 2

	rr := &readinessRenderer{indicator: r, circle: circle}
	rr.updateColor()
	return rr
}

type readinessRenderer struct {
	indicator *ReadinessIndicator
	circle    *canvas.Circle
}

func (r *readinessRenderer) Layout(size fyne.Size) {
	circleSize := fyne.NewSize(14, 14)
	r.circle.Move(fyne.NewPos(
		(size.Width-circleSize.Width)/2,
		(size.Height-circleSize.Height)/2,
	))
	r.circle.Resize(circleSize)
}

func (r *readinessRenderer) MinSize() fyne.Size {
	return r.indicator.MinSize()
}

func (r *readinessRenderer) updateColor() {
	if !r.indicator.visible {
		r.circle.StrokeColor = color.Transparent
		r.circle.FillColor = color.Transparent
		return
	}
	r.circle.StrokeColor = r.indicator.tone.Color()
	if r.indicator.tone == app.Success {
		r.circle.FillColor = r.indicator.tone.Color()
	} else {
		r.circle.FillColor = color.Transparent
	}
}

func (r *readinessRenderer) Refresh() {
	r.updateColor()
	canvas.Refresh(r.circle)
}

func (r *readinessRenderer) Destroy() {}

func (r *readinessRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.circle}
}

// DisabledEntry is an Entry widget that appears disabled but still shows content.
type DisabledEntry struct {
	widget.Entry
}

// NewDisabledEntry creates a new disabled entry.
func NewDisabledEntry() *DisabledEntry {
	e := &DisabledEntry{}
	e.ExtendBaseWidget(e)
	e.Disable()
	return e
}

// TooltipButton is a button with a tooltip that shows on hover.
type TooltipButton struct {
	widget.Button
	tooltip string
	popup   *widget.PopUp
}

var _ desktop.Hoverable = (*TooltipButton)(nil)

// NewTooltipButton creates a new button with a tooltip.
func NewTooltipButton(label string, tooltip string, onTapped func()) *TooltipButton {
	b := &TooltipButton{tooltip: tooltip}
	b.Text = label
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

// MouseIn shows the tooltip.
func (b *TooltipButton) MouseIn(e *desktop.MouseEvent) {
	if b.tooltip == "" || b.Disabled() {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(b)
	if c == nil {
		return
	}
	text := canvas.NewText(b.tooltip, theme.Color(theme.ColorNameForeground))
	text.TextSize = theme.CaptionTextSize()
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	b.popup = widget.NewPopUp(container.NewStack(bg, container.NewPadded(text)), c)
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	b.popup.ShowAtPosition(fyne.NewPos(pos.X, pos.Y+b.Size().Height+2))
}

// MouseMoved is called when the mouse moves within the button.
func (b *TooltipButton) MouseMoved(e *desktop.MouseEvent) {}

// MouseOut hides the tooltip.
func (b *TooltipButton) MouseOut() {
	if b.popup != nil {
		b.popup.Hide()
		b.popup = nil
	}
}

// ColoredLabel is a label with custom text color.
type ColoredLabel struct {
	widget.BaseWidget
	text  string
	color color.Color
	bold  bool
}

// NewColoredLabel creates a new label with custom color.
func NewColoredLabel(text string, col color.Color) *ColoredLabel {
	l := &ColoredLabel{text: text, color: col}
	l.ExtendBaseWidget(l)
	return l
}

// SetText updates the label text.
func (l *ColoredLabel) SetText(text string) {
	l.text = text
	l.Refresh()
}

// SetColor updates the label color.
func (l *ColoredLabel) SetColor(col color.Color) {
	l.color = col
	l.Refresh()
}

// Set updates text and color together.
func (l *ColoredLabel) Set(text string, tone app.Tone) {
	l.text = text
	l.color = tone.Color()
	l.Refresh()
}

// Text returns the label text.
func (l *ColoredLabel) Text() string {
	return l.text
}

// MinSize returns the minimum size needed to display the label.
func (l *ColoredLabel) MinSize() fyne.Size {
	return fyne.MeasureText(l.text, theme.TextSize(), fyne.TextStyle{Bold: l.bold})
}

// CreateRenderer creates the renderer for the colored label.
func (l *ColoredLabel) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(l.text, l.color)
	text.TextSize = theme.TextSize()
	text.TextStyle = fyne.TextStyle{Bold: l.bold}
	return &coloredLabelRenderer{label: l, text: text}
}

type coloredLabelRenderer struct {
	label *ColoredLabel
	text  *canvas.Text
}

func (r *coloredLabelRenderer) Layout(size fyne.Size) {
	r.text.Move(fyne.NewPos(0, (size.Height-r.text.MinSize().Height)/2))
}

func (r *coloredLabelRenderer) MinSize() fyne.Size {
	return r.label.MinSize()
}

func (r *coloredLabelRenderer) Refresh() {
	r.text.Text = r.label.text
	r.text.Color = r.label.color
	r.text.TextStyle = fyne.TextStyle{Bold: r.label.bold}
	canvas.Refresh(r.text)
}

func (r *coloredLabelRenderer) Destroy() {}

func (r *coloredLabelRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.text}
}
