// Package theory provides pure note arithmetic: chromatic classes, the
// white/black partition of the octave, and octave indexing relative to a
// base note. All functions are total over int.
package theory

import "strconv"

// Chromatic classes of the black keys, ascending within one octave.
var BlackClasses = [5]int{1, 3, 6, 8, 10}

// Chromatic classes of the white keys, ascending within one octave.
var WhiteClasses = [7]int{0, 2, 4, 5, 7, 9, 11}

// ChromaticClass returns note mod 12 normalized to [0,11]. Relative notes
// can be negative before normalization, so a plain % is not enough.
func ChromaticClass(note int) int {
	return ((note % 12) + 12) % 12
}

// IsBlack reports whether a chromatic class belongs to a black key.
func IsBlack(class int) bool {
	switch class {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// IsBlackNote reports whether a note (any int) lands on a black key.
func IsBlackNote(note int) bool {
	return IsBlack(ChromaticClass(note))
}

// OctaveIndex returns floor(relativeNote/12) for relativeNote = note - base.
func OctaveIndex(relativeNote int) int {
	return FloorDiv(relativeNote, 12)
}

// WhiteIndexInOctave returns the position of a white chromatic class within
// WhiteClasses, or -1 for a black class.
func WhiteIndexInOctave(class int) int {
	for i, c := range WhiteClasses {
		if c == class {
			return i
		}
	}
	return -1
}

// FloorDiv divides rounding toward negative infinity. Go's / truncates
// toward zero, which is wrong for notes below the base.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a note as name plus octave, C4 = 60.
func NoteName(note int) string {
	class := ChromaticClass(note)
	octave := FloorDiv(note, 12) - 1
	return noteNames[class] + strconv.Itoa(octave)
}
