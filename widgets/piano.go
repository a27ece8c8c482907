// Package widgets renders engine state for the terminal.
package widgets

import (
	"strings"

	"go-keybed/geometry"
	"go-keybed/theme"
	"go-keybed/theory"
)

// RenderKeyboard paints the keyboard as cols x rows terminal cells. Every
// cell hit-tests its own center through the geometry, so the picture and the
// mouse handling can never disagree. Keys in pressed are highlighted and
// white keys get a name label near the bottom.
func RenderKeyboard(cfg geometry.Config, cols, rows int, pressed map[int]bool, th *theme.Theme) string {
	labels := keyLabels(cfg, cols)

	var out strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col) + 0.5
			y := float64(row) + 0.5
			note := cfg.HitTest(x, y)

			ch := " "
			if row == rows-2 {
				if r, ok := labels[col]; ok {
					ch = string(r)
				}
			}
			// Mark the right edge where the neighbor cell is another key.
			if cfg.HitTest(x+1, y) != note {
				ch = "▕"
			}

			style := th.WhiteKey()
			switch {
			case pressed[note]:
				style = th.PressedKey()
			case theory.IsBlackNote(note - cfg.BaseNote):
				style = th.BlackKey()
			}
			out.WriteString(style.Render(ch))
		}
		if row < rows-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// keyLabels places note names inside the white keys that fit on screen.
func keyLabels(cfg geometry.Config, cols int) map[int]rune {
	labels := make(map[int]rune)
	for note := 0; note <= 127; note++ {
		if theory.IsBlackNote(note - cfg.BaseNote) {
			continue
		}
		r, ok := cfg.RectFor(note)
		if !ok || r.X < 0 || r.X+r.W > float64(cols) {
			continue
		}
		name := theory.NoteName(note)
		start := int(r.X) + 1
		if start+len(name) >= int(r.X+r.W) {
			continue
		}
		for i, c := range name {
			labels[start+i] = c
		}
	}
	return labels
}
