// Package sequencer drives the phase loop of the split-reveal animation.
//
// A [Sequencer] owns the animation flags ([State]), the per-slice scatter
// offsets and the timing table. Once started it cycles forever through
//
//	DrawingHold → Scatter → Reassemble → ColorHold → FadeOut → DrawingHold …
//
// holding each phase for its configured duration, until it is stopped or
// restarted.
//
// # Scheduling
//
// Waits are delegated to a [Scheduler]. [WallScheduler] uses time.AfterFunc;
// [ManualScheduler] keeps a virtual clock that only moves when Advance is
// called, which makes tests and offline exports deterministic:
//
//	sched := sequencer.NewManualScheduler(time.Time{})
//	seq := sequencer.New(cfg, sequencer.WithScheduler(sched))
//	seq.Start()
//	sched.Advance(2 * time.Second) // DrawingHold → Scatter
//
// # Cancellation
//
// Every start increments a generation counter. Scheduled callbacks carry the
// generation they were scheduled under and do nothing if it is no longer
// current, so a stale loop never mutates state after Stop, SetSliceCount or
// SetTiming. Timers that were already armed may still fire.
//
// # Randomness
//
// Scatter offsets are drawn from an injectable [Rand]; *math/rand/v2.Rand
// satisfies it, so tests can pass a seeded PCG source.
package sequencer
