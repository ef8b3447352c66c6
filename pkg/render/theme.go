package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is a background and foreground pair.
type Theme struct {
	Name       string
	Background colorful.Color
	Foreground colorful.Color
}

// Built-in themes.
var (
	ThemeDark = Theme{
		Name:       "dark",
		Background: mustHex("#0a0a0a"),
		Foreground: mustHex("#e5e5e5"),
	}
	ThemeLight = Theme{
		Name:       "light",
		Background: mustHex("#ffffff"),
		Foreground: mustHex("#404040"),
	}
)

// Themes lists the theme names.
var Themes = []string{ThemeDark.Name, ThemeLight.Name}

// ParseTheme returns the built-in theme with the given name.
func ParseTheme(name string) (Theme, error) {
	switch name {
	case ThemeDark.Name:
		return ThemeDark, nil
	case ThemeLight.Name:
		return ThemeLight, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// IsDark reports whether the background is perceptually dark.
func (t Theme) IsDark() bool {
	l, _, _ := t.Background.Lab()
	return l < 0.5
}

// Toggle returns the opposite built-in theme.
func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return ThemeLight
	}
	return ThemeDark
}

// BackgroundColor returns the background as an opaque NRGBA color.
func (t Theme) BackgroundColor() color.NRGBA {
	return toNRGBA(t.Background)
}

// ForegroundColor returns the foreground as an opaque NRGBA color.
func (t Theme) ForegroundColor() color.NRGBA {
	return toNRGBA(t.Foreground)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
