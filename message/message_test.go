package message

import (
	"bytes"
	"testing"
)

func TestNoteOn_Wire(t *testing.T) {
	got := NoteOn(60, 100)
	want := Message{0x90, 60, 100}
	if !bytes.Equal(got, want) {
		t.Errorf("NoteOn(60,100) = % X, want % X", got, want)
	}
}

func TestNoteOff_Decode(t *testing.T) {
	e := Decode(Message{0x80, 60, 0})
	if e.Kind != KindNoteOff || e.Note != 60 {
		t.Errorf("Decode(note-off) = %+v", e)
	}
}

func TestNoteOnZeroVelocity_IsNoteOff(t *testing.T) {
	on := Decode(Message{0x90, 64, 0})
	off := Decode(Message{0x80, 64, 0})
	if on.Kind != off.Kind {
		t.Errorf("note-on vel 0 decodes to %v, note-off to %v", on.Kind, off.Kind)
	}
	if on.Note != 64 {
		t.Errorf("note = %d, want 64", on.Note)
	}
}

func TestPitchBend_RoundTrip(t *testing.T) {
	for v := 0; v <= BendMax; v++ {
		m := PitchBend(v)
		if got := DecodePitchBend(m[1], m[2]); got != v {
			t.Fatalf("pitch bend %d round-tripped to %d", v, got)
		}
	}
}

func TestPitchBend_Halves(t *testing.T) {
	m := PitchBend(BendCenter)
	if m[0] != 0xE0 || m[1] != 0x00 || m[2] != 0x40 {
		t.Errorf("PitchBend(center) = % X", []byte(m))
	}
}

func TestEncode_Clamps(t *testing.T) {
	cases := []struct {
		name string
		got  Message
		want Message
	}{
		{"note high", NoteOn(300, 100), Message{0x90, 127, 100}},
		{"note low", NoteOn(-5, 100), Message{0x90, 0, 100}},
		{"velocity high", NoteOn(60, 999), Message{0x90, 60, 127}},
		{"bend high", PitchBend(99999), Message{0xE0, 0x7F, 0x7F}},
		{"bend low", PitchBend(-1), Message{0xE0, 0, 0}},
		{"cc value", ControlChange(11, 200), Message{0xB0, 11, 127}},
	}
	for _, c := range cases {
		if !bytes.Equal(c.got, c.want) {
			t.Errorf("%s: got % X, want % X", c.name, c.got, c.want)
		}
	}
}

func TestDecode_Unrecognized(t *testing.T) {
	cases := []Message{
		{0xA0, 60, 10}, // polyphonic aftertouch, not in the set
		{0xF0, 0x7E},   // sysex
		{0x90},         // truncated
		nil,            // empty
	}
	for _, m := range cases {
		if e := Decode(m); e.Kind != KindUnrecognized {
			t.Errorf("Decode(% X) = %v, want unrecognized", []byte(m), e.Kind)
		}
	}
}

func TestRoundTrip_Idempotent(t *testing.T) {
	msgs := []Message{
		NoteOn(60, 100),
		NoteOn(60, 0), // decodes as note-off, must stay stable
		NoteOff(72),
		PitchBend(12345),
		ControlChange(1, 64),
		ControlChange(11, 127),
	}
	for _, m := range msgs {
		first := Decode(m)
		second := Decode(Encode(first))
		if first != second {
			t.Errorf("decode(encode(decode(% X))): %+v != %+v", []byte(m), second, first)
		}
	}
}
