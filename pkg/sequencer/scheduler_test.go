package sequencer

import (
	"testing"
	"time"
)

func TestManualSchedulerOrder(t *testing.T) {
	m := NewManualScheduler(epoch)
	var got []string

	m.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("fired = %v, want [a b]", got)
	}
	if !m.Now().Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("Now() = %v, want epoch+20ms", m.Now())
	}

	m.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Errorf("fired = %v, want [a b c]", got)
	}
}

func TestManualSchedulerNowDuringCallback(t *testing.T) {
	m := NewManualScheduler(epoch)
	var at time.Time
	m.AfterFunc(5*time.Millisecond, func() { at = m.Now() })

	m.Advance(time.Second)
	if want := epoch.Add(5 * time.Millisecond); !at.Equal(want) {
		t.Errorf("Now() inside callback = %v, want %v", at, want)
	}
}

func TestManualSchedulerChainedCallbacks(t *testing.T) {
	m := NewManualScheduler(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		m.AfterFunc(10*time.Millisecond, tick)
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(55 * time.Millisecond)
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
}

func TestManualTimerStop(t *testing.T) {
	m := NewManualScheduler(epoch)
	fired := false
	timer := m.AfterFunc(time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop() = false on pending timer, want true")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	m.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualSchedulerBackwardsIsNoop(t *testing.T) {
	m := NewManualScheduler(epoch)
	m.AdvanceTo(epoch.Add(-time.Hour))
	if !m.Now().Equal(epoch) {
		t.Errorf("Now() = %v, want %v", m.Now(), epoch)
	}
}

func TestTimingDuration(t *testing.T) {
	timing := Timing{DrawingHold: -time.Second, Scatter: time.Second}
	if got := timing.Duration(PhaseDrawingHold); got != 0 {
		t.Errorf("Duration(DrawingHold) = %v, want 0", got)
	}
	if got := timing.Duration(PhaseScatter); got != time.Second {
		t.Errorf("Duration(Scatter) = %v, want 1s", got)
	}
	if got := timing.Duration(PhaseFadeOut); got != 0 {
		t.Errorf("Duration(FadeOut) = %v, want 0", got)
	}
	if got := DefaultTiming().Cycle(); got != 7700*time.Millisecond {
		t.Errorf("Cycle() = %v, want 7.7s", got)
	}
}

func TestPhaseNextAndString(t *testing.T) {
	p := PhaseIdle
	for i := range 2 * len(Phases) {
		p = p.Next()
		if want := Phases[i%len(Phases)]; p != want {
			t.Errorf("step %d: Next() = %v, want %v", i, p, want)
		}
	}
	if got := PhaseColorHold.String(); got != "color_hold" {
		t.Errorf("String() = %q, want %q", got, "color_hold")
	}
	if got := Phase(42).String(); got != "phase(42)" {
		t.Errorf("String() = %q, want %q", got, "phase(42)")
	}
}
