// Package keyboard is the engine facade: one Keyboard owns the geometry for
// a surface, an aggregator for its pointer gestures and the binding table
// for its physical keys, and turns input events into encoded control
// messages for the host to hand to its sink.
package keyboard

import (
	"go-keybed/binding"
	"go-keybed/geometry"
	"go-keybed/gesture"
	"go-keybed/message"
)

// Pointer-initiated notes carry a fixed velocity; the surface has no
// pressure to report.
const gestureVelocity = 100

// Sink receives outbound control messages.
type Sink interface {
	Send(m message.Message) error
}

// Keyboard translates positional and key input for one surface.
type Keyboard struct {
	geo    geometry.Config
	agg    *gesture.Aggregator
	layout binding.Layout
	custom map[string]int
	table  binding.Table
	held   map[string]uint8
}

// New builds a keyboard with its binding table for the given layout.
func New(cfg geometry.Config, layout binding.Layout, custom map[string]int) *Keyboard {
	return &Keyboard{
		geo:    cfg,
		agg:    gesture.New(),
		layout: layout,
		custom: custom,
		table:  binding.Build(layout, cfg.BaseNote, custom),
		held:   make(map[string]uint8),
	}
}

// Geometry returns the current layout configuration.
func (k *Keyboard) Geometry() geometry.Config {
	return k.geo
}

// SetGeometry replaces the layout configuration. A base note change
// invalidates the binding table, so the whole table is rebuilt.
func (k *Keyboard) SetGeometry(cfg geometry.Config) {
	rebuild := cfg.BaseNote != k.geo.BaseNote
	k.geo = cfg
	if rebuild {
		k.table = binding.Build(k.layout, cfg.BaseNote, k.custom)
	}
}

// SetLayout switches the binding layout and rebuilds the table.
func (k *Keyboard) SetLayout(layout binding.Layout, custom map[string]int) {
	k.layout = layout
	k.custom = custom
	k.table = binding.Build(layout, k.geo.BaseNote, custom)
}

// Layout returns the active layout name.
func (k *Keyboard) Layout() binding.Layout {
	return k.layout
}

// Table exposes the current binding table. Treat it as read-only; it is
// replaced wholesale on any layout or base note change.
func (k *Keyboard) Table() binding.Table {
	return k.table
}

// HitTest resolves a surface point to a note.
func (k *Keyboard) HitTest(x, y float64) int {
	return k.geo.HitTest(x, y)
}

// RectFor returns the rectangle of a note, or false outside [0,127].
func (k *Keyboard) RectFor(note int) (geometry.Rect, bool) {
	return k.geo.RectFor(note)
}

// OnGesture feeds one pointer event through the aggregator and returns the
// messages it produced: a note-on when a gesture starts on a key, bend and
// controller updates while any gesture is active, a note-off plus the reset
// messages when the last gesture ends. Cancel behaves exactly like end.
func (k *Keyboard) OnGesture(id int, phase gesture.Phase, x, y float64) []message.Message {
	var msgs []message.Message
	var sig gesture.Signals

	switch phase {
	case gesture.PhaseStart:
		note := k.HitTest(x, y)
		sig = k.agg.Start(id, x, y, uint8(note))
		msgs = append(msgs, message.NoteOn(note, gestureVelocity))
	case gesture.PhaseMove:
		sig = k.agg.Move(id, x, y)
	case gesture.PhaseEnd, gesture.PhaseCancel:
		note, bound := k.agg.Note(id)
		sig = k.agg.End(id)
		if bound {
			msgs = append(msgs, message.NoteOff(int(note)))
		}
	}

	return append(msgs, signalMessages(sig)...)
}

// KeyDown resolves a physical key identifier through the binding table and
// returns the note-on, or nil when the key is unbound or already sounding.
func (k *Keyboard) KeyDown(id string) []message.Message {
	note, ok := k.table[id]
	if !ok {
		return nil
	}
	if _, sounding := k.held[id]; sounding {
		return nil
	}
	k.held[id] = note
	return []message.Message{message.NoteOn(int(note), gestureVelocity)}
}

// KeyUp releases a physical key. The note-off uses the note the key was
// bound to at press time, so a table rebuild mid-hold cannot strand a note.
func (k *Keyboard) KeyUp(id string) []message.Message {
	note, sounding := k.held[id]
	if !sounding {
		return nil
	}
	delete(k.held, id)
	return []message.Message{message.NoteOff(int(note))}
}

// ActiveGestures returns how many pointer gestures are live.
func (k *Keyboard) ActiveGestures() int {
	return k.agg.ActiveCount()
}

func signalMessages(sig gesture.Signals) []message.Message {
	var msgs []message.Message
	if sig.HasBend {
		msgs = append(msgs, message.PitchBend(sig.Bend))
	}
	for _, c := range sig.Controls {
		msgs = append(msgs, message.ControlChange(int(c.Controller), int(c.Value)))
	}
	return msgs
}
