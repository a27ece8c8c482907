package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0
	RoleBlackKey = 0.1
	RoleMuted    = 0.3
	RoleAccent   = 0.6
	RolePressed  = 0.8
	RoleWhiteKey = 1.0
)

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

// WhiteKey is the fill style for natural keys.
func (t *Theme) WhiteKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(rgbToLipgloss(t.Palette.Lookup(RoleBlackKey))).
		Background(rgbToLipgloss(t.Palette.Lookup(RoleWhiteKey)))
}

// BlackKey is the fill style for accidentals.
func (t *Theme) BlackKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(rgbToLipgloss(t.Palette.Lookup(RoleWhiteKey))).
		Background(rgbToLipgloss(t.Palette.Lookup(RoleBlackKey)))
}

// PressedKey is the fill style for keys that are sounding.
func (t *Theme) PressedKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(rgbToLipgloss(t.Palette.Lookup(RoleBG))).
		Background(rgbToLipgloss(t.Palette.Lookup(RolePressed)))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
