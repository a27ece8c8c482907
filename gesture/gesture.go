// Package gesture aggregates concurrent pointer gestures into continuous
// controller signals. One Aggregator belongs to one input surface and must
// only be driven from the event loop that delivers its input; aggregate
// signals depend on the full set of active gestures, so mutations for an
// instance have to stay serialized.
package gesture

import "go-keybed/message"

// Phase is the lifecycle stage of one pointer gesture. Cancel behaves
// exactly like End.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// Horizontal displacement below the dead zone produces no bend.
const bendDeadZone = 10

// Control is one controller/value pair derived from the aggregate.
type Control struct {
	Controller uint8
	Value      uint8
}

// Signals is what one gesture update produced. HasBend gates Bend: while
// gestures are active the bend only fires beyond the dead zone, and on the
// transition to no active gestures a reset fires with the bend centered and
// both controllers back at rest.
type Signals struct {
	Bend     int
	HasBend  bool
	Controls []Control
}

type state struct {
	startX, startY     float64
	currentX, currentY float64
	note               uint8
}

// Aggregator tracks active gestures keyed by an opaque pointer id.
type Aggregator struct {
	active map[int]*state
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{active: make(map[int]*state)}
}

// ActiveCount returns the number of gestures currently held.
func (a *Aggregator) ActiveCount() int {
	return len(a.active)
}

// Note returns the note a gesture was started on.
func (a *Aggregator) Note(id int) (uint8, bool) {
	s, ok := a.active[id]
	if !ok {
		return 0, false
	}
	return s.note, true
}

// Start begins a gesture at (x,y) bound to the hit-tested note. Starting an
// id that is already active restarts it in place.
func (a *Aggregator) Start(id int, x, y float64, note uint8) Signals {
	a.active[id] = &state{startX: x, startY: y, currentX: x, currentY: y, note: note}
	return a.aggregate()
}

// Move updates a gesture's current position. Moves for unknown ids are
// ignored but still recompute the aggregate.
func (a *Aggregator) Move(id int, x, y float64) Signals {
	if s, ok := a.active[id]; ok {
		s.currentX, s.currentY = x, y
	}
	return a.aggregate()
}

// End removes a gesture. When the last active gesture ends, the returned
// signals reset the bend to center, modulation to 0 and expression to 127 -
// exactly once per transition to empty.
func (a *Aggregator) End(id int) Signals {
	_, existed := a.active[id]
	delete(a.active, id)
	if existed && len(a.active) == 0 {
		return Signals{
			Bend:    message.BendCenter,
			HasBend: true,
			Controls: []Control{
				{Controller: message.CCModulation, Value: 0},
				{Controller: message.CCExpression, Value: 127},
			},
		}
	}
	return a.aggregate()
}

// aggregate recomputes the continuous signals from all active gestures.
func (a *Aggregator) aggregate() Signals {
	if len(a.active) == 0 {
		return Signals{}
	}

	var sumDX float64
	maxDY := 0.0
	first := true
	for _, s := range a.active {
		sumDX += s.currentX - s.startX
		dy := s.currentY - s.startY
		if first || dy > maxDY {
			maxDY = dy
			first = false
		}
	}
	avgDX := sumDX / float64(len(a.active))

	var sig Signals

	if mag := abs(avgDX) - bendDeadZone; mag > 0 {
		if mag > 127 {
			mag = 127
		}
		bend := message.BendCenter + sign(avgDX)*mag*8191/127
		sig.Bend = clampBend(int(bend))
		sig.HasBend = true
	}

	// maxDY >= 0 means no gesture has moved upward: treat the downward
	// travel as expression fading from full. Any upward travel switches to
	// the modulation wheel instead.
	if maxDY >= 0 {
		sig.Controls = []Control{{Controller: message.CCExpression, Value: clamp7(127 - maxDY)}}
	} else {
		sig.Controls = []Control{{Controller: message.CCModulation, Value: clamp7(-maxDY)}}
	}
	return sig
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp7(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

func clampBend(v int) int {
	if v < 0 {
		return 0
	}
	if v > message.BendMax {
		return message.BendMax
	}
	return v
}
