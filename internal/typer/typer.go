// internal/typer/typer.go
package typer

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/aleontiev/vue-typer/internal/event"
	"github.com/aleontiev/vue-typer/internal/fade"
	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/aleontiev/vue-typer/internal/segment"
	"github.com/aleontiev/vue-typer/internal/spool"
	"github.com/aleontiev/vue-typer/internal/types"
)

// frameDelay is the deferral between the final fade tick of a word and the
// word-typed transition, so a renderer observes the finished state before
// the next phase fires.
const frameDelay = 16 * time.Millisecond

// Typer is the timing-driven state machine sequencing the typing, fading
// and erasing of the spool's items. All state is mutated under one mutex,
// only by its own methods and timer callbacks; event handlers receive
// snapshots and must not call back into the Typer while handling.
type Typer struct {
	mu     sync.Mutex
	opts   Options
	events *event.Manager
	sched  scheduler
	rng    *rand.Rand

	specs []fade.Spec
	items *spool.Spool
	fades *fade.Scheduler

	// active text state, rebuilt whenever the spool item changes
	text      string
	graphemes []string
	tables    segment.Tables

	phase   Phase
	pending Phase // phase about to start; meaningful only while Idle with a timer armed
	cur     int   // caret grapheme index in [0, len(graphemes)]
	prev    int   // caret value immediately before the latest shift

	timer timerHandle
	gen   int // bumped on every cancel; stale callbacks check it and bail
}

// New creates a Typer from validated options. Events are dispatched through
// the supplied manager. The animation does not run until Start is called.
func New(opts Options, events *event.Manager) (*Typer, error) {
	return newTyper(opts, events, systemScheduler{}, nil)
}

func newTyper(opts Options, events *event.Manager, sched scheduler, rng *rand.Rand) (*Typer, error) {
	t := &Typer{
		events: events,
		sched:  sched,
		rng:    rng,
		fades:  fade.NewScheduler(),
	}
	if err := t.configure(opts); err != nil {
		return nil, err
	}
	return t, nil
}

// configure validates opts and rebuilds all derived state. Caller must hold
// the mutex (or own the Typer exclusively, as in New).
func (t *Typer) configure(opts Options) error {
	specs, err := opts.Validate()
	if err != nil {
		return err
	}
	items, err := spool.New(opts.Text, opts.Shuffle, opts.Repeat, t.rng)
	if err != nil {
		return err
	}

	t.opts = opts
	t.specs = specs
	t.items = items
	t.phase = PhaseIdle
	t.pending = PhaseIdle
	t.loadActive()
	logger.Debugf("Typer configured: %d item(s), repeat=%d, style=%s, %d fade(s)",
		items.Len(), opts.Repeat, opts.EraseStyle, len(specs))
	return nil
}

// loadActive re-derives text, tokens and fade state from the current spool
// item and rewinds the caret.
func (t *Typer) loadActive() {
	t.text = t.items.Current()
	t.graphemes = segment.Split(t.text)
	t.tables = segment.Tokenize(t.graphemes)
	t.fades.Reset(t.specs, t.tables)
	t.cur = 0
	t.prev = 0
}

// Start begins the animation from the configured initial action.
func (t *Typer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startLocked()
}

func (t *Typer) startLocked() {
	switch t.opts.InitialAction {
	case ActionErasing:
		// The first item counts as already typed; enter the post-typing
		// decision point directly.
		t.cur = t.tables.Length
		t.prev = t.cur
		t.publish()
		t.wordTyped(false)
	default:
		t.startTyping()
	}
}

// StartTyping resets the caret and types the active item. It is a no-op
// while a typing timer is already pending or active.
func (t *Typer) StartTyping() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startTyping()
}

func (t *Typer) startTyping() {
	if t.phase == PhaseTyping || t.pending == PhaseTyping {
		return
	}
	if t.timer != nil {
		// switching phases mid-flight: drop the other phase's timer so at
		// most one is ever armed
		t.cancel()
	}
	t.cur = 0
	t.prev = 0
	t.fades.EndOut()
	t.phase = PhaseIdle
	t.pending = PhaseTyping
	t.publish()
	t.after(t.opts.PreTypeDelay, t.beginTyping)
}

func (t *Typer) beginTyping() {
	t.phase = PhaseTyping
	t.pending = PhaseIdle
	t.typeStep()
}

// typeStep advances the caret one grapheme. Once the caret reaches the end
// of the text it keeps ticking through the terminal fade-out; only when the
// fade-out reports done does it yield one frame and hand over to wordTyped.
func (t *Typer) typeStep() {
	t.prev = t.cur
	if t.cur < t.tables.Length {
		ch := t.graphemes[t.cur]
		t.cur++
		t.events.Dispatch(event.TypeCharTyped, event.CharTypedData{Char: ch, Index: t.cur - 1})
	}

	if t.cur == t.tables.Length {
		if !t.fades.OutActive() {
			t.fades.BeginOut()
		} else {
			t.fades.TickOut()
		}
		t.publish()
		if t.fades.OutDone() {
			t.after(frameDelay, func() { t.wordTyped(true) })
			return
		}
		t.after(t.opts.TypeDelay, t.typeStep)
		return
	}

	t.publish()
	t.after(t.opts.TypeDelay, t.typeStep)
}

// wordTyped is the post-typing decision point. Every non-final word is
// erased before the next one; the final word erases only when repetitions
// remain or EraseOnComplete asks for it.
func (t *Typer) wordTyped(emit bool) {
	if emit {
		t.events.Dispatch(event.TypeWordTyped, event.WordTypedData{Text: t.text})
	}
	if t.items.AtLast() && !t.opts.EraseOnComplete && !t.items.RepeatsRemain() {
		t.complete()
		return
	}
	t.startErasing()
}

// StartErasing moves the caret to the end of the text and erases the active
// item. It is a no-op while an erasing timer is already pending or active.
func (t *Typer) StartErasing() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startErasing()
}

func (t *Typer) startErasing() {
	if t.phase == PhaseErasing || t.pending == PhaseErasing {
		return
	}
	if t.timer != nil {
		t.cancel()
	}
	t.cur = t.tables.Length
	t.prev = t.cur
	t.phase = PhaseIdle
	t.pending = PhaseErasing
	t.publish()
	t.after(t.opts.PreEraseDelay, t.beginErasing)
}

func (t *Typer) beginErasing() {
	t.phase = PhaseErasing
	t.pending = PhaseIdle
	t.fades.EndOut()
	t.eraseStep()
}

func (t *Typer) eraseStep() {
	t.prev = t.cur
	switch t.opts.EraseStyle {
	case EraseBackspace, EraseSelectBack:
		t.cur -= t.eraseShift()
		if t.cur < 0 {
			t.cur = 0
		}
	case EraseSelectAll, EraseClear:
		t.cur = 0
	}
	t.publish()

	if t.doneErasing() {
		t.events.Dispatch(event.TypeWordErased, event.WordErasedData{Text: t.text})
		t.wordErased()
		return
	}
	t.after(t.opts.EraseDelay, t.eraseStep)
}

// eraseShift collapses a trailing run of non-word graphemes plus one more
// character into a single tick.
func (t *Typer) eraseShift() int {
	run := 0
	for i := t.cur - 1; i >= 0 && !segment.IsWordChar(t.graphemes[i]); i-- {
		run++
	}
	return run + 1
}

// doneErasing is the erase completion predicate. Selection styles demand
// that both the current and the previous caret value are zero, forcing one
// extra tick so the selected state is rendered even for one-character words.
func (t *Typer) doneErasing() bool {
	if t.opts.EraseStyle.selects() {
		return t.cur == 0 && t.prev == 0
	}
	return t.cur == 0
}

// wordErased is the post-erasing decision point.
func (t *Typer) wordErased() {
	if t.items.AtLast() {
		if !t.items.RepeatsRemain() {
			t.complete()
			return
		}
		t.items.Restart()
	} else {
		t.items.Advance()
	}
	t.loadActive()
	t.startTyping()
}

func (t *Typer) complete() {
	t.phase = PhaseComplete
	t.pending = PhaseIdle
	t.cancel()
	t.publish()
	t.events.Dispatch(event.TypeCompleted, event.CompletedData{})
	logger.Infof("Typer complete after %d repeat(s)", t.items.RepeatCount())
}

// Reconfigure cancels all pending timers synchronously, rebuilds the spool
// and fade state from the new options, and resumes from the configured
// initial action. On validation failure the previous state is kept but the
// animation stays cancelled.
func (t *Typer) Reconfigure(opts Options) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancel()
	if err := t.configure(opts); err != nil {
		return err
	}
	t.startLocked()
	return nil
}

// Restart re-runs the animation from scratch with the current options.
func (t *Typer) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancel()
	t.items.Reset()
	t.phase = PhaseIdle
	t.pending = PhaseIdle
	t.loadActive()
	t.startLocked()
}

// Stop cancels every pending timer. No callback fires after Stop returns.
func (t *Typer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel()
	t.phase = PhaseIdle
	t.pending = PhaseIdle
}

// cancel stops the armed timer and invalidates any in-flight callback.
// Caller must hold the mutex.
func (t *Typer) cancel() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.fades.EndOut()
}

// after arms the single phase timer. The callback re-acquires the mutex and
// bails if a cancel happened in between, so a stale callback can never
// mutate reinitialized state.
func (t *Typer) after(d time.Duration, fn func()) {
	gen := t.gen
	t.timer = t.sched.After(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen != gen {
			return
		}
		t.timer = nil
		fn()
	})
}

// Snapshot returns the current decoration state.
func (t *Typer) Snapshot() types.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buildSnapshot()
}

// CurrentPhase returns the active phase, or the phase about to start while
// a pre-delay timer is pending (for status display).
func (t *Typer) CurrentPhase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != PhaseIdle {
		return t.pending
	}
	return t.phase
}

// SpoolPosition returns the active item index, item count and repeat count.
func (t *Typer) SpoolPosition() (index, count, repeats int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items.Index(), t.items.Len(), t.items.RepeatCount()
}

// TypedText returns the typed portion of the active item.
func (t *Typer) TypedText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.graphemes[:t.cur], "")
}

// publish rebuilds the decoration snapshot and dispatches it. Caller must
// hold the mutex.
func (t *Typer) publish() {
	t.events.Dispatch(event.TypeStateChanged, event.StateChangedData{Snapshot: t.buildSnapshot()})
}
