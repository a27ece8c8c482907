// Package message encodes and decodes the 2-3 byte control-message wire
// format. The status byte's high nibble carries the kind; the low nibble is
// the channel, always 0 here. Out-of-range inputs clamp to the nearest valid
// bound so encoding is total, and unrecognized status bytes decode to
// KindUnrecognized instead of failing, so a bad byte never stalls the input
// pipeline.
package message

// Status byte high nibbles.
const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusControlChange = 0xB0
	statusPitchBend     = 0xE0
)

// Well-known controller numbers.
const (
	CCModulation uint8 = 1
	CCExpression uint8 = 11
)

// BendCenter is the 14-bit pitch-bend rest value.
const (
	BendCenter = 8192
	BendMax    = 16383
)

// Message is a raw 2-3 byte control message.
type Message []byte

// Kind is the decoded message kind.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindNoteOn
	KindNoteOff
	KindPitchBend
	KindControlChange
)

func (k Kind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindPitchBend:
		return "pitch-bend"
	case KindControlChange:
		return "control-change"
	}
	return "unrecognized"
}

// Event is a decoded control message. Only the fields relevant to Kind are
// meaningful: Note/Velocity for notes, Controller/Value for control changes,
// Bend for pitch bend.
type Event struct {
	Kind       Kind
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
	Bend       int // 14-bit, [0,16383]
}

// NoteOn builds a note-on message. A velocity of zero is valid on the wire
// and decodes as a note-off.
func NoteOn(note, velocity int) Message {
	return Message{statusNoteOn, clamp7(note), clamp7(velocity)}
}

// NoteOff builds a note-off message.
func NoteOff(note int) Message {
	return Message{statusNoteOff, clamp7(note), 0}
}

// PitchBend builds a pitch-bend message from a 14-bit value, split into its
// low and high 7-bit halves.
func PitchBend(value int) Message {
	v := clamp14(value)
	return Message{statusPitchBend, uint8(v & 0x7F), uint8((v >> 7) & 0x7F)}
}

// ControlChange builds a controller message.
func ControlChange(controller, value int) Message {
	return Message{statusControlChange, clamp7(controller), clamp7(value)}
}

// Decode classifies a message. Note-on with zero velocity comes back as
// KindNoteOff for the same note. Messages shorter than two bytes or with an
// unknown status nibble return KindUnrecognized.
func Decode(m Message) Event {
	if len(m) < 2 {
		return Event{Kind: KindUnrecognized}
	}
	data1 := m[1] & 0x7F
	var data2 uint8
	if len(m) > 2 {
		data2 = m[2] & 0x7F
	}

	switch m[0] & 0xF0 {
	case statusNoteOn:
		if data2 == 0 {
			return Event{Kind: KindNoteOff, Note: data1}
		}
		return Event{Kind: KindNoteOn, Note: data1, Velocity: data2}
	case statusNoteOff:
		return Event{Kind: KindNoteOff, Note: data1}
	case statusPitchBend:
		return Event{Kind: KindPitchBend, Bend: DecodePitchBend(data1, data2)}
	case statusControlChange:
		return Event{Kind: KindControlChange, Controller: data1, Value: data2}
	}
	return Event{Kind: KindUnrecognized}
}

// Encode rebuilds the wire form of a decoded event. Unrecognized events
// return nil.
func Encode(e Event) Message {
	switch e.Kind {
	case KindNoteOn:
		return NoteOn(int(e.Note), int(e.Velocity))
	case KindNoteOff:
		return NoteOff(int(e.Note))
	case KindPitchBend:
		return PitchBend(e.Bend)
	case KindControlChange:
		return ControlChange(int(e.Controller), int(e.Value))
	}
	return nil
}

// DecodePitchBend reassembles a 14-bit value from its 7-bit halves.
func DecodePitchBend(low, high uint8) int {
	return int(low&0x7F) | int(high&0x7F)<<7
}

func clamp7(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

func clamp14(v int) int {
	if v < 0 {
		return 0
	}
	if v > BendMax {
		return BendMax
	}
	return v
}
