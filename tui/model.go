package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"go-keybed/binding"
	"go-keybed/gesture"
	"go-keybed/keyboard"
	"go-keybed/message"
	"go-keybed/theme"
	"go-keybed/theory"
	"go-keybed/widgets"
)

// The keyboard starts on this row of the screen (header plus a blank line).
const keyboardTop = 2

// Terminals deliver no key-up events, so typed notes are released by a
// timer instead.
const keyGate = 250 * time.Millisecond

// Layouts cycled by tab, in order.
var layoutCycle = []binding.Layout{
	binding.LayoutDoubleRow,
	binding.LayoutSingleRow,
	binding.LayoutSingleRowExtended,
	binding.LayoutDoubleRowExtended,
}

type keyReleaseMsg struct {
	id string
}

// Model drives one on-screen keyboard. Mouse drags become gestures, typed
// keys go through the binding table, and every produced message is both
// forwarded to the sink and decoded back to keep the pressed-key highlight
// in sync with what actually went out.
type Model struct {
	Keyboard *keyboard.Keyboard
	Sink     keyboard.Sink
	Theme    *theme.Theme
	Log      *zap.Logger

	// PortStatus, when set, is shown in the header.
	PortStatus func() string

	width    int
	pressed  map[int]bool
	dragging bool
	quitting bool
}

func NewModel(kb *keyboard.Keyboard, sink keyboard.Sink, th *theme.Theme, log *zap.Logger) Model {
	return Model{
		Keyboard: kb,
		Sink:     sink,
		Theme:    th,
		Log:      log,
		width:    80,
		pressed:  make(map[int]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		// q stays playable: the extended layouts bind it.
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "[":
			m.shiftBase(-12)

		case "]":
			m.shiftBase(12)

		case "tab":
			m.cycleLayout()

		default:
			id := msg.String()
			if out := m.Keyboard.KeyDown(id); len(out) > 0 {
				m.send(out)
				return m, tea.Tick(keyGate, func(time.Time) tea.Msg {
					return keyReleaseMsg{id: id}
				})
			}
		}

	case keyReleaseMsg:
		m.send(m.Keyboard.KeyUp(msg.id))

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	x := float64(msg.X) + 0.5
	y := float64(msg.Y-keyboardTop) + 0.5

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onKeyboard(msg) {
			return m
		}
		m.dragging = true
		m.send(m.Keyboard.OnGesture(0, gesture.PhaseStart, x, y))

	case tea.MouseActionMotion:
		if m.dragging {
			m.send(m.Keyboard.OnGesture(0, gesture.PhaseMove, x, y))
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.send(m.Keyboard.OnGesture(0, gesture.PhaseEnd, x, y))
		}
	}
	return m
}

func (m Model) onKeyboard(msg tea.MouseMsg) bool {
	row := msg.Y - keyboardTop
	return row >= 0 && row < int(m.Keyboard.Geometry().WhiteKeyHeight)
}

// send forwards messages to the sink and mirrors note state for rendering.
func (m Model) send(out []message.Message) {
	for _, msg := range out {
		if err := m.Sink.Send(msg); err != nil {
			m.Log.Debug("send failed", zap.Error(err))
		}
		switch e := message.Decode(msg); e.Kind {
		case message.KindNoteOn:
			m.pressed[int(e.Note)] = true
		case message.KindNoteOff:
			delete(m.pressed, int(e.Note))
		}
	}
}

func (m *Model) shiftBase(delta int) {
	cfg := m.Keyboard.Geometry()
	base := cfg.BaseNote + delta
	if base < 0 || base > 115 {
		return
	}
	cfg.BaseNote = base
	m.Keyboard.SetGeometry(cfg)
}

func (m *Model) cycleLayout() {
	cur := m.Keyboard.Layout()
	for i, l := range layoutCycle {
		if l == cur {
			m.Keyboard.SetLayout(layoutCycle[(i+1)%len(layoutCycle)], nil)
			return
		}
	}
	m.Keyboard.SetLayout(layoutCycle[0], nil)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cfg := m.Keyboard.Geometry()
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	port := "midi:off"
	if m.PortStatus != nil {
		port = m.PortStatus()
	}
	header := headerStyle.Render(fmt.Sprintf("go-keybed  base:%s  layout:%s  %s",
		theory.NoteName(cfg.BaseNote), m.Keyboard.Layout(), port))

	kbView := widgets.RenderKeyboard(cfg, m.width, int(cfg.WhiteKeyHeight), m.pressed, m.Theme)

	help := dimStyle.Render("type to play  mouse: drag sideways = bend, down = expression  [/]:octave  tab:layout  esc:quit")

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(kbView)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
