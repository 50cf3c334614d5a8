// This file defines a compact Fyne theme for a dense editor layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SeatmapTheme wraps the default Fyne theme with compact sizing overrides
// so the canvas keeps most of the window.
type SeatmapTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewSeatmapTheme creates a SeatmapTheme that follows the system variant.
func NewSeatmapTheme() *SeatmapTheme {
	return &SeatmapTheme{base: theme.DefaultTheme(), system: true}
}

// NewSeatmapThemeWithVariant creates a SeatmapTheme fixed to a light or dark variant.
func NewSeatmapThemeWithVariant(variant fyne.ThemeVariant) *SeatmapTheme {
	return &SeatmapTheme{base: theme.DefaultTheme(), variant: variant}
}

// NewSeatmapThemeForConfig maps the configured theme name to a theme.
func NewSeatmapThemeForConfig(name string) *SeatmapTheme {
	switch name {
	case "light":
		return NewSeatmapThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewSeatmapThemeWithVariant(theme.VariantDark)
	default:
		return NewSeatmapTheme()
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// theme follows the system.
func (t *SeatmapTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *SeatmapTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *SeatmapTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *SeatmapTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 18
	default:
		return t.base.Size(name)
	}
}
