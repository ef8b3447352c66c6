package sequencer

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slicereveal/pkg/observability"
)

// Initial selects the flags a sequencer holds before its first phase.
type Initial int

const (
	// InitialAssembled starts assembled, visible and outlined.
	InitialAssembled Initial = iota
	// InitialScattered starts scattered and invisible.
	InitialScattered
)

// Config configures a Sequencer.
type Config struct {
	SliceCount int
	Timing     Timing
	Spread     Spread
	AutoPlay   bool
	Initial    Initial
}

// DefaultConfig returns three slices, the default timing and spread, autoplay on.
func DefaultConfig() Config {
	return Config{
		SliceCount: 3,
		Timing:     DefaultTiming(),
		Spread:     DefaultSpread(),
		AutoPlay:   true,
		Initial:    InitialAssembled,
	}
}

// Cause explains why an observer was notified.
type Cause string

const (
	CauseEnter  Cause = "enter"  // a phase was entered
	CauseResize Cause = "resize" // the slice count changed
	CauseStop   Cause = "stop"   // the loop was cancelled by Stop
)

// Snapshot is a copy of the sequencer state.
type Snapshot struct {
	Phase      Phase
	State      State
	Offsets    []Offset
	Generation uint64
	Running    bool
	EnteredAt  time.Time
}

// Transition is delivered to observers on every state change.
type Transition struct {
	From     Phase
	To       Phase
	Cause    Cause
	At       time.Time
	Snapshot Snapshot
}

// Observer receives transitions. It is called with the sequencer's lock held
// and must not call back into the sequencer.
type Observer func(Transition)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithScheduler sets the scheduler. The default is WallScheduler.
func WithScheduler(sched Scheduler) Option {
	return func(s *Sequencer) { s.sched = sched }
}

// WithRand sets the random source for scatter offsets.
func WithRand(rng Rand) Option {
	return func(s *Sequencer) { s.rng = rng }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.observers = append(s.observers, o) }
}

// WithLogger sets the logger. Phase changes are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// Sequencer runs the reveal loop for one instance.
type Sequencer struct {
	id        string
	sched     Scheduler
	rng       Rand
	logger    *log.Logger
	observers []Observer

	mu        sync.Mutex
	cfg       Config
	phase     Phase
	state     State
	offsets   []Offset
	gen       uint64
	running   bool
	enteredAt time.Time
	timer     Timer
}

// New creates a sequencer in its initial state. It does not start the loop.
func New(cfg Config, opts ...Option) *Sequencer {
	s := &Sequencer{id: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	if s.sched == nil {
		s.sched = WallScheduler{}
	}
	if s.rng == nil {
		s.rng = newClockRand()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	cfg.SliceCount = max(cfg.SliceCount, 1)
	s.cfg = cfg
	s.offsets = GenerateOffsets(s.rng, cfg.SliceCount, cfg.Spread)
	s.enteredAt = s.sched.Now()
	switch cfg.Initial {
	case InitialScattered:
		s.state = State{Assembled: false, Outline: true, Visible: false}
	default:
		s.state = State{Assembled: true, Outline: true, Visible: true}
	}
	return s
}

// ID returns the instance handle. It is unique per sequencer and stable for
// its lifetime.
func (s *Sequencer) ID() string {
	return s.id
}

// Config returns the current configuration.
func (s *Sequencer) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Start begins the loop at DrawingHold, cancelling any loop already running.
// It does nothing when autoplay is off.
func (s *Sequencer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.AutoPlay {
		return
	}
	s.restartLocked()
}

// Stop cancels the running loop. State stays as it was.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancelLocked()
	s.notifyLocked(s.phase, CauseStop)
}

// Running reports whether a loop is active.
func (s *Sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetSliceCount changes the number of slices, clamped to at least one.
// Offsets are regenerated for the new count, and a running loop restarts.
func (s *Sequencer) SetSliceCount(n int) {
	n = max(n, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if n == s.cfg.SliceCount {
		return
	}
	s.cfg.SliceCount = n
	s.offsets = GenerateOffsets(s.rng, n, s.cfg.Spread)
	s.notifyLocked(s.phase, CauseResize)
	if s.running {
		s.restartLocked()
	}
}

// SetTiming replaces the phase durations. A running loop restarts.
func (s *Sequencer) SetTiming(t Timing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == s.cfg.Timing {
		return
	}
	s.cfg.Timing = t
	if s.running {
		s.restartLocked()
	}
}

// SetSpread replaces the scatter bounds used from the next Scatter phase on.
func (s *Sequencer) SetSpread(sp Spread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Spread = sp
}

// Snapshot returns a copy of the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:      s.phase,
		State:      s.state,
		Offsets:    slices.Clone(s.offsets),
		Generation: s.gen,
		Running:    s.running,
		EnteredAt:  s.enteredAt,
	}
}

func (s *Sequencer) restartLocked() {
	s.cancelLocked()
	s.running = true
	s.enterLocked(PhaseDrawingHold, s.gen)
}

// cancelLocked invalidates every callback scheduled so far.
func (s *Sequencer) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.running {
		observability.Sequencer().OnCancel(s.id, s.gen)
		s.logger.Debug("loop cancelled", "instance", s.id, "generation", s.gen)
	}
	s.gen++
	s.running = false
}

func (s *Sequencer) enterLocked(p Phase, gen uint64) {
	from := s.phase
	s.phase = p
	s.state = s.state.apply(p)
	if p == PhaseScatter {
		s.offsets = GenerateOffsets(s.rng, s.cfg.SliceCount, s.cfg.Spread)
	}
	s.enteredAt = s.sched.Now()

	s.logger.Debug("phase", "instance", s.id, "from", from, "to", p, "generation", gen)
	observability.Sequencer().OnPhase(s.id, p.String(), gen)
	s.notifyLocked(from, CauseEnter)

	s.timer = s.sched.AfterFunc(s.cfg.Timing.Duration(p), func() { s.advance(gen) })
}

// advance is the timer callback. It is a no-op for stale generations.
func (s *Sequencer) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || !s.running {
		return
	}
	s.enterLocked(s.phase.Next(), gen)
}

func (s *Sequencer) notifyLocked(from Phase, cause Cause) {
	if len(s.observers) == 0 {
		return
	}
	tr := Transition{
		From:     from,
		To:       s.phase,
		Cause:    cause,
		At:       s.enteredAt,
		Snapshot: s.snapshotLocked(),
	}
	if cause != CauseEnter {
		tr.At = s.sched.Now()
	}
	for _, o := range s.observers {
		o(tr)
	}
}
