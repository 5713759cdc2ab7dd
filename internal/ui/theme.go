// Package ui provides the GraphiDesk desktop UI.
//
// This file defines a compact Fyne theme with a selectable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GraphiDeskTheme wraps the default Fyne theme with compact sizing and an
// optional forced variant.
type GraphiDeskTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	forced  bool
}

// NewGraphiDeskTheme creates a theme for the configured name: "light",
// "dark", or anything else to follow the system.
func NewGraphiDeskTheme(name string) *GraphiDeskTheme {
	t := &GraphiDeskTheme{base: theme.DefaultTheme()}
	t.SetName(name)
	return t
}

// SetName switches between the light, dark and system variants.
func (t *GraphiDeskTheme) SetName(name string) {
	v, forced := themeVariant(name)
	t.variant = v
	t.forced = forced
}

func themeVariant(name string) (fyne.ThemeVariant, bool) {
	switch name {
	case "light":
		return theme.VariantLight, true
	case "dark":
		return theme.VariantDark, true
	default:
		return 0, false
	}
}

// Color delegates to the base theme, forcing the variant when one is set.
func (t *GraphiDeskTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *GraphiDeskTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *GraphiDeskTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *GraphiDeskTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
