// Package binding builds tables mapping physical key identifiers to notes.
// A table is built whole from (layout, baseNote, custom offsets) and never
// patched; callers rebuild when any input changes.
package binding

import "go-keybed/theory"

// Layout names the closed set of key layouts.
type Layout string

const (
	LayoutNone              Layout = "none"
	LayoutSingleRow         Layout = "single-row"
	LayoutSingleRowExtended Layout = "single-row-extended"
	LayoutDoubleRow         Layout = "double-row"
	LayoutDoubleRowExtended Layout = "double-row-extended"
)

// Table maps a physical key identifier to a note.
type Table map[string]uint8

// Single-row identifiers follow the qwerty fingering of a piano octave:
// home row for naturals, q-row for accidentals. The first 13 cover one
// octave plus the next C; the extended tail adds five more semitones.
var singleRowIDs = []string{
	"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k",
	"o", "l", "p", ";", "'",
}

const singleRowLen = 13

// Double-row identifiers: bottom row plays white keys, top row the black
// keys between them.
var (
	doubleRowBottom = []string{"z", "x", "c", "v", "b", "n", "m", ",", ".", "/"}
	doubleRowTop    = []string{"s", "d", "g", "h", "j", "l", ";"}
)

// presets holds the static layouts as data keyed off the layout name;
// offsets are semitones above the C below the base note. New static layouts
// are added here, not in Build.
var presets = map[Layout]map[string]int{
	LayoutDoubleRowExtended: doubleRowExtendedPreset(),
}

// doubleRowExtendedPreset widens the double row to two fixed octaves from
// baseC: bottom row plus the q-row continuing where the home row runs out.
func doubleRowExtendedPreset() map[string]int {
	p := map[string]int{
		"z": 0, "s": 1, "x": 2, "d": 3, "c": 4, "v": 5, "g": 6,
		"b": 7, "h": 8, "n": 9, "j": 10, "m": 11,
		",": 12, "l": 13, ".": 14, ";": 15, "/": 16,
		"q": 12, "2": 13, "w": 14, "3": 15, "e": 16, "r": 17, "5": 18,
		"t": 19, "6": 20, "y": 21, "7": 22, "u": 23, "i": 24,
	}
	return p
}

// Build produces the binding table for a layout anchored at baseNote.
// Custom offset tables apply only to the extended variants and are relative
// to the C below baseNote. Unknown layouts yield an empty table so callers
// can no-op safely.
func Build(layout Layout, baseNote int, custom map[string]int) Table {
	baseC := 12 * theory.FloorDiv(baseNote, 12)

	if custom != nil && (layout == LayoutSingleRowExtended || layout == LayoutDoubleRowExtended) {
		return fromOffsets(custom, baseC)
	}
	if preset, ok := presets[layout]; ok {
		return fromOffsets(preset, baseC)
	}

	switch layout {
	case LayoutSingleRow:
		return singleRow(baseNote, baseC, singleRowLen)
	case LayoutSingleRowExtended:
		return singleRow(baseNote, baseC, len(singleRowIDs))
	case LayoutDoubleRow:
		return doubleRow(baseNote)
	}
	return Table{}
}

func fromOffsets(offsets map[string]int, baseC int) Table {
	t := make(Table, len(offsets))
	for id, off := range offsets {
		t[id] = clampNote(baseC + off)
	}
	return t
}

// singleRow assigns an ascending chromatic run from baseNote, with the
// anchor identifier (the first one) pinned to baseC.
func singleRow(baseNote, baseC, n int) Table {
	t := make(Table, n)
	for i := 0; i < n; i++ {
		t[singleRowIDs[i]] = clampNote(baseNote + i)
	}
	t[singleRowIDs[0]] = clampNote(baseC)
	return t
}

// doubleRow assigns successive white notes to the bottom row starting from
// the white note at or below baseNote, inserting a top-row identifier as the
// black note inside every two-semitone white gap until the top row runs out.
func doubleRow(baseNote int) Table {
	t := make(Table, len(doubleRowBottom)+len(doubleRowTop))

	white := baseNote
	for theory.IsBlackNote(white) {
		white--
	}

	prev := -1
	top := 0
	for _, id := range doubleRowBottom {
		if prev >= 0 && white-prev == 2 && top < len(doubleRowTop) {
			t[doubleRowTop[top]] = clampNote(prev + 1)
			top++
		}
		t[id] = clampNote(white)
		prev = white
		white++
		for theory.IsBlackNote(white) {
			white++
		}
	}
	return t
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
