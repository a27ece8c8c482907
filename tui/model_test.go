package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"go-keybed/binding"
	"go-keybed/geometry"
	"go-keybed/keyboard"
	"go-keybed/message"
	"go-keybed/theme"
)

type captureSink struct {
	msgs []message.Message
}

func (c *captureSink) Send(m message.Message) error {
	c.msgs = append(c.msgs, m)
	return nil
}

func newTestModel(sink keyboard.Sink) Model {
	cfg := geometry.Config{BaseNote: 60, WhiteKeyWidth: 6, WhiteKeyHeight: 10}
	kb := keyboard.New(cfg, binding.LayoutDoubleRow, nil)
	return NewModel(kb, sink, theme.New(theme.ByName("ivory")), zap.NewNop())
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypedKey_PlaysAndGates(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)

	next, cmd := m.Update(keyMsg("z"))
	m = next.(Model)
	if len(sink.msgs) != 1 {
		t.Fatalf("msgs = %v", sink.msgs)
	}
	if e := message.Decode(sink.msgs[0]); e.Kind != message.KindNoteOn || e.Note != 60 {
		t.Errorf("note-on = %+v", e)
	}
	if !m.pressed[60] {
		t.Error("note 60 not marked pressed")
	}
	if cmd == nil {
		t.Fatal("no gate command scheduled")
	}

	next, _ = m.Update(keyReleaseMsg{id: "z"})
	m = next.(Model)
	if e := message.Decode(sink.msgs[len(sink.msgs)-1]); e.Kind != message.KindNoteOff {
		t.Errorf("release = %+v", e)
	}
	if m.pressed[60] {
		t.Error("note 60 still pressed after release")
	}
}

func TestUnboundKey_NoCommand(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)
	_, cmd := m.Update(keyMsg("1"))
	if cmd != nil || len(sink.msgs) != 0 {
		t.Errorf("unbound key produced cmd=%v msgs=%v", cmd, sink.msgs)
	}
}

func TestMouseDrag_GestureFlow(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)

	press := tea.MouseMsg{X: 2, Y: keyboardTop + 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	m = next.(Model)
	if !m.dragging {
		t.Fatal("press did not start a drag")
	}
	if e := message.Decode(sink.msgs[0]); e.Kind != message.KindNoteOn || e.Note != 60 {
		t.Fatalf("press msg = %+v", e)
	}

	move := tea.MouseMsg{X: 30, Y: keyboardTop + 8, Action: tea.MouseActionMotion}
	next, _ = m.Update(move)
	m = next.(Model)
	var sawBend bool
	for _, msg := range sink.msgs {
		if message.Decode(msg).Kind == message.KindPitchBend {
			sawBend = true
		}
	}
	if !sawBend {
		t.Error("drag produced no pitch bend")
	}

	release := tea.MouseMsg{X: 30, Y: keyboardTop + 8, Action: tea.MouseActionRelease}
	next, _ = m.Update(release)
	m = next.(Model)
	if m.dragging {
		t.Error("release left the model dragging")
	}
	if e := message.Decode(sink.msgs[len(sink.msgs)-3]); e.Kind != message.KindPitchBend || e.Bend != message.BendCenter {
		t.Errorf("no centered bend near end of stream: %+v", e)
	}
}

func TestMousePress_OffKeyboardIgnored(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)
	press := tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(press)
	if next.(Model).dragging || len(sink.msgs) != 0 {
		t.Errorf("off-keyboard press handled: %v", sink.msgs)
	}
}

func TestOctaveShift_ClampsAndRebuilds(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)

	next, _ := m.Update(keyMsg("]"))
	m = next.(Model)
	if got := m.Keyboard.Geometry().BaseNote; got != 72 {
		t.Errorf("base after ] = %d, want 72", got)
	}
	if m.Keyboard.Table()["z"] != 72 {
		t.Errorf(`tbl["z"] = %d, want 72`, m.Keyboard.Table()["z"])
	}

	for i := 0; i < 10; i++ {
		next, _ = m.Update(keyMsg("["))
		m = next.(Model)
	}
	if got := m.Keyboard.Geometry().BaseNote; got != 0 {
		t.Errorf("base after repeated [ = %d, want 0", got)
	}
}

func TestTabCyclesLayout(t *testing.T) {
	sink := &captureSink{}
	m := newTestModel(sink)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.Keyboard.Layout() != binding.LayoutSingleRow {
		t.Errorf("layout after tab = %s", m.Keyboard.Layout())
	}
}
