package ui

import (
	"image/color"

	"rsafront/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme is the application theme. It keeps the default look but uses the
// status tone colors for the semantic color names, so dialogs, the progress
// bar and the status line agree.
type Theme struct{}

var _ fyne.Theme = (*Theme)(nil)

// NewTheme creates the application theme.
func NewTheme() fyne.Theme {
	return &Theme{}
}

// Color returns the color for the specified name and variant.
func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return util.BLUE
	case theme.ColorNameSuccess:
		return util.GREEN
	case theme.ColorNameWarning:
		return util.YELLOW
	case theme.ColorNameError:
		return util.RED

	case theme.ColorNameDisabled:
		// Read-only entries show the engine path and the log, keep them legible
		if variant == theme.VariantLight {
			return color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
		}
		return color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}

	case theme.ColorNameInputBorder:
		if variant == theme.VariantLight {
			return color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
		}
		return color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

// Font returns the font resource for the specified text style.
func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified name.
func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name.
func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 20 // Default is 24
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameInputBorder:
		return 2
	default:
		return theme.DefaultTheme().Size(name)
	}
}
