package gesture

import (
	"testing"

	"go-keybed/message"
)

func TestSingleDrag_BendsDown(t *testing.T) {
	a := New()
	a.Start(1, 100, 50, 60)
	sig := a.Move(1, 85, 50)

	if !sig.HasBend {
		t.Fatal("drag past dead zone produced no bend")
	}
	// |avgDX| = 15, magnitude 5: 8192 - 5*8191/127.
	if sig.Bend != 7869 {
		t.Errorf("Bend = %d, want 7869", sig.Bend)
	}
}

func TestDeadZone_NoBend(t *testing.T) {
	a := New()
	a.Start(1, 100, 50, 60)
	sig := a.Move(1, 110, 50) // exactly at the dead zone edge
	if sig.HasBend {
		t.Errorf("bend fired inside dead zone: %d", sig.Bend)
	}
	sig = a.Move(1, 91, 50)
	if sig.HasBend {
		t.Errorf("bend fired inside dead zone: %d", sig.Bend)
	}
}

func TestBend_ClampsAtExtremes(t *testing.T) {
	a := New()
	a.Start(1, 0, 0, 60)
	sig := a.Move(1, 500, 0)
	if sig.Bend != message.BendMax {
		t.Errorf("hard right bend = %d, want %d", sig.Bend, message.BendMax)
	}
	sig = a.Move(1, -500, 0)
	if sig.Bend != 1 {
		// 8192 - 8191 with the magnitude pinned at 127.
		t.Errorf("hard left bend = %d, want 1", sig.Bend)
	}
}

func TestMultiPointer_AveragesDX(t *testing.T) {
	a := New()
	a.Start(1, 100, 0, 60)
	a.Start(2, 200, 0, 64)
	a.Move(1, 130, 0)          // dx +30
	sig := a.Move(2, 210, 0)   // dx +10, avg +20 -> magnitude 10
	want := 8192 + 10*8191/127 // truncated float math lands on the same int
	if !sig.HasBend || sig.Bend != want {
		t.Errorf("Bend = %d (has=%v), want %d", sig.Bend, sig.HasBend, want)
	}
}

func TestVerticalPolicy_ExpressionThenModulation(t *testing.T) {
	a := New()
	a.Start(1, 0, 100, 60)

	// No movement yet: expression at full.
	sig := a.Move(1, 0, 100)
	if len(sig.Controls) != 1 || sig.Controls[0].Controller != message.CCExpression || sig.Controls[0].Value != 127 {
		t.Fatalf("resting controls = %+v", sig.Controls)
	}

	// Downward drag fades expression.
	sig = a.Move(1, 0, 140)
	if sig.Controls[0].Controller != message.CCExpression || sig.Controls[0].Value != 87 {
		t.Errorf("down drag controls = %+v", sig.Controls)
	}

	// Upward drag switches to the modulation wheel.
	sig = a.Move(1, 0, 60)
	if sig.Controls[0].Controller != message.CCModulation || sig.Controls[0].Value != 40 {
		t.Errorf("up drag controls = %+v", sig.Controls)
	}
}

func TestVerticalPolicy_MaxDYWins(t *testing.T) {
	a := New()
	a.Start(1, 0, 100, 60)
	a.Start(2, 50, 100, 64)
	a.Move(1, 0, 40) // dy -60
	sig := a.Move(2, 50, 120)
	// max(-60, +20) = +20: the downward gesture masks the upward one.
	if sig.Controls[0].Controller != message.CCExpression || sig.Controls[0].Value != 107 {
		t.Errorf("controls = %+v", sig.Controls)
	}
}

func TestEnd_ResetsOnceOnEmpty(t *testing.T) {
	a := New()
	a.Start(1, 0, 0, 60)
	a.Start(2, 10, 0, 62)

	sig := a.End(1)
	if sig.HasBend && sig.Bend == message.BendCenter && len(sig.Controls) == 2 {
		t.Error("reset fired while a gesture was still active")
	}

	sig = a.End(2)
	if !sig.HasBend || sig.Bend != message.BendCenter {
		t.Fatalf("no centered bend on transition to empty: %+v", sig)
	}
	want := []Control{
		{Controller: message.CCModulation, Value: 0},
		{Controller: message.CCExpression, Value: 127},
	}
	if len(sig.Controls) != 2 || sig.Controls[0] != want[0] || sig.Controls[1] != want[1] {
		t.Errorf("reset controls = %+v, want %+v", sig.Controls, want)
	}

	// Ending an id that is no longer active must not fire another reset.
	sig = a.End(2)
	if sig.HasBend || len(sig.Controls) != 0 {
		t.Errorf("second End produced signals: %+v", sig)
	}
	if a.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d", a.ActiveCount())
	}
}

func TestNote_TracksBinding(t *testing.T) {
	a := New()
	a.Start(7, 5, 5, 72)
	if n, ok := a.Note(7); !ok || n != 72 {
		t.Errorf("Note(7) = %d,%v", n, ok)
	}
	a.End(7)
	if _, ok := a.Note(7); ok {
		t.Error("Note(7) still present after End")
	}
}
