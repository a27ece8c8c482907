// Package geometry maps notes to key rectangles and points back to notes for
// a piano-style surface. The forward and inverse mappings share one Config;
// rects are recomputed on every call so dimensions and base note can change
// between queries.
package geometry

import (
	"math"

	"go-keybed/theory"
)

// Rect is a key's bounding box in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the rect.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Config describes the keyboard layout. BaseNote is the leftmost visible
// note; black key dimensions derive from the white ones.
type Config struct {
	BaseNote       int
	WhiteKeyWidth  float64
	WhiteKeyHeight float64
	MarginX        float64
	MarginY        float64
}

// BlackKeyWidth returns the derived black key width.
func (c Config) BlackKeyWidth() float64 {
	return c.WhiteKeyWidth/2 - 2
}

// BlackKeyHeight returns the derived black key height.
func (c Config) BlackKeyHeight() float64 {
	return c.WhiteKeyHeight*0.65 - 2
}

// blackSlot maps a black chromatic class to its half-open slot position
// within the octave: {1,3,6,8,10} -> {1,2,4,5,6}.
func blackSlot(class int) int {
	if class < 4 {
		return (class + 1) / 2
	}
	return class/2 + 1
}

// RectFor returns the rectangle of a note, or false if the note is outside
// [0,127]. The math itself is total; the guard keeps callers honest.
func (c Config) RectFor(note int) (Rect, bool) {
	if note < 0 || note > 127 {
		return Rect{}, false
	}
	rel := note - c.BaseNote
	class := theory.ChromaticClass(rel)
	octave := theory.OctaveIndex(rel)

	if theory.IsBlack(class) {
		slot := 7*octave + blackSlot(class) - 1
		return Rect{
			X: c.MarginX + float64(slot)*c.WhiteKeyWidth + c.WhiteKeyWidth*0.75,
			Y: c.MarginY,
			W: c.BlackKeyWidth(),
			H: c.BlackKeyHeight(),
		}, true
	}

	slot := theory.WhiteIndexInOctave(class) + 7*octave
	return Rect{
		X: c.MarginX + float64(slot)*c.WhiteKeyWidth,
		Y: c.MarginY,
		W: c.WhiteKeyWidth,
		H: c.WhiteKeyHeight,
	}, true
}

// HitTest resolves a point to the note under it. Points in the upper band of
// a white key close to either vertical edge resolve to the adjacent black
// key when one exists; the right edge wins over the left. The result is the
// exact left-inverse of RectFor at white-key interiors, clamped to [0,127].
func (c Config) HitTest(x, y float64) int {
	adjustedX := x - c.MarginX
	mayBeBlack := y < c.MarginY+c.BlackKeyHeight()

	whiteIndex := int(math.Floor(adjustedX / c.WhiteKeyWidth))
	xWithinKey := adjustedX - float64(whiteIndex)*c.WhiteKeyWidth

	rightEdge := mayBeBlack && xWithinKey > 0.65*c.WhiteKeyWidth
	leftEdge := mayBeBlack && xWithinKey < 0.35*c.WhiteKeyWidth

	octave := theory.FloorDiv(whiteIndex, 7)
	whiteInOctave := whiteIndex - 7*octave

	// Shift the white-only position into chromatic space: every black class
	// at or below it pushes it one semitone up.
	for _, b := range theory.BlackClasses {
		if b <= whiteInOctave {
			whiteInOctave++
		}
	}
	chromatic := octave*12 + whiteInOctave

	if rightEdge && theory.IsBlackNote(chromatic+1) {
		chromatic++
	} else if leftEdge && theory.IsBlackNote(chromatic-1) {
		chromatic--
	}

	return clampNote(chromatic + c.BaseNote)
}

func clampNote(n int) int {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return n
}
