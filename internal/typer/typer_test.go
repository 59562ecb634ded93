package typer

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/aleontiev/vue-typer/internal/event"
	"github.com/aleontiev/vue-typer/internal/types"
)

// manualScheduler queues callbacks instead of arming real timers so tests
// can drive the state machine tick by tick.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	sched   *manualScheduler
	fn      func()
	stopped bool
}

func (mt *manualTimer) Stop() bool {
	mt.sched.mu.Lock()
	defer mt.sched.mu.Unlock()
	if mt.stopped {
		return false
	}
	mt.stopped = true
	return true
}

func (s *manualScheduler) After(d time.Duration, fn func()) timerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	mt := &manualTimer{sched: s, fn: fn}
	s.pending = append(s.pending, mt)
	return mt
}

// fire runs the oldest live callback. It reports false when none is queued.
func (s *manualScheduler) fire() bool {
	s.mu.Lock()
	var next *manualTimer
	for len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		if !c.stopped {
			next = c
			break
		}
	}
	s.mu.Unlock()
	if next == nil {
		return false
	}
	next.fn()
	return true
}

// drain fires callbacks until the queue empties or max is hit.
func (s *manualScheduler) drain(max int) int {
	n := 0
	for n < max && s.fire() {
		n++
	}
	return n
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.pending {
		if !c.stopped {
			n++
		}
	}
	return n
}

// recorder flattens lifecycle events into comparable strings.
type recorder struct {
	events    []string
	snapshots []types.Snapshot
}

func record(m *event.Manager) *recorder {
	r := &recorder{}
	m.Subscribe(event.TypeCharTyped, func(e event.Event) bool {
		d := e.Data.(event.CharTypedData)
		r.events = append(r.events, fmt.Sprintf("char(%s,%d)", d.Char, d.Index))
		return false
	})
	m.Subscribe(event.TypeWordTyped, func(e event.Event) bool {
		r.events = append(r.events, "typed("+e.Data.(event.WordTypedData).Text+")")
		return false
	})
	m.Subscribe(event.TypeWordErased, func(e event.Event) bool {
		r.events = append(r.events, "erased("+e.Data.(event.WordErasedData).Text+")")
		return false
	})
	m.Subscribe(event.TypeCompleted, func(e event.Event) bool {
		r.events = append(r.events, "completed")
		return false
	})
	m.Subscribe(event.TypeStateChanged, func(e event.Event) bool {
		r.snapshots = append(r.snapshots, e.Data.(event.StateChangedData).Snapshot)
		return false
	})
	return r
}

func (r *recorder) saw(want string) bool {
	for _, e := range r.events {
		if e == want {
			return true
		}
	}
	return false
}

func (r *recorder) assertEvents(t *testing.T, want ...string) {
	t.Helper()
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Fatalf("event %d = %q, want %q (all: %v)", i, r.events[i], want[i], r.events)
		}
	}
}

func newTestTyper(t *testing.T, opts Options) (*Typer, *manualScheduler, *recorder) {
	t.Helper()
	events := event.NewManager()
	rec := record(events)
	sched := &manualScheduler{}
	tp, err := newTyper(opts, events, sched, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("newTyper: %v", err)
	}
	return tp, sched, rec
}

func baseOptions(text ...string) Options {
	opts := DefaultOptions()
	opts.Text = text
	opts.Repeat = 0
	return opts
}

func TestScenarioSingleWordClear(t *testing.T) {
	opts := baseOptions("Hi")
	opts.EraseStyle = EraseClear
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	if n := sched.drain(100); n >= 100 {
		t.Fatal("animation did not terminate")
	}

	rec.assertEvents(t,
		"char(H,0)",
		"char(i,1)",
		"typed(Hi)",
		"erased(Hi)", // clear erases in a single tick
		"completed",
	)
	if got := tp.CurrentPhase(); got != PhaseComplete {
		t.Errorf("final phase = %v, want complete", got)
	}
}

func TestScenarioNoEraseAfterFinalWord(t *testing.T) {
	opts := baseOptions("A", "B")
	opts.EraseStyle = EraseClear
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.drain(100)

	rec.assertEvents(t,
		"char(A,0)",
		"typed(A)",
		"erased(A)",
		"char(B,0)",
		"typed(B)",
		"completed",
	)
}

func TestStartTypingIsIdempotent(t *testing.T) {
	tp, sched, _ := newTestTyper(t, baseOptions("abc"))

	tp.Start()
	if sched.live() != 1 {
		t.Fatalf("live timers after Start = %d, want 1", sched.live())
	}
	tp.StartTyping() // must not reset the caret or arm a second timer
	if sched.live() != 1 {
		t.Fatalf("live timers after duplicate StartTyping = %d, want 1", sched.live())
	}

	sched.fire() // begin typing, first char
	idx := tp.Snapshot().CaretIndex
	tp.StartTyping()
	if got := tp.Snapshot().CaretIndex; got != idx {
		t.Errorf("duplicate StartTyping moved caret from %d to %d", idx, got)
	}
	if sched.live() != 1 {
		t.Errorf("live timers = %d, want 1", sched.live())
	}
}

func TestStartErasingIsIdempotent(t *testing.T) {
	opts := baseOptions("hi")
	opts.EraseStyle = EraseBackspace
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	for len(rec.events) == 0 || rec.events[len(rec.events)-1] != "typed(hi)" {
		sched.fire()
	}
	// pre-erase timer is now armed
	if sched.live() != 1 {
		t.Fatalf("live timers = %d, want 1", sched.live())
	}
	tp.StartErasing()
	if sched.live() != 1 {
		t.Fatalf("live timers after duplicate StartErasing = %d, want 1", sched.live())
	}

	sched.fire() // first erase tick
	idx := tp.Snapshot().CaretIndex
	tp.StartErasing()
	if got := tp.Snapshot().CaretIndex; got != idx {
		t.Errorf("duplicate StartErasing moved caret from %d to %d", idx, got)
	}
}

func TestBackspaceRoundTrip(t *testing.T) {
	opts := baseOptions("abcde") // pure alphanumeric: one grapheme per tick
	opts.EraseStyle = EraseBackspace
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	for len(rec.events) == 0 || rec.events[len(rec.events)-1] != "typed(abcde)" {
		if !sched.fire() {
			t.Fatal("ran out of timers before the word finished typing")
		}
	}

	ticks := 0
	for !rec.saw("erased(abcde)") {
		if !sched.fire() {
			t.Fatal("ran out of timers before the word erased")
		}
		ticks++
	}
	if ticks != 5 {
		t.Errorf("erasing %q took %d ticks, want 5", "abcde", ticks)
	}
}

func TestBackspaceCollapsesTrailingPunctuation(t *testing.T) {
	opts := baseOptions("ab!? ")
	opts.EraseStyle = EraseBackspace
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	for len(rec.events) == 0 || rec.events[len(rec.events)-1] != "typed(ab!? )" {
		sched.fire()
	}

	// tick 1 swallows " ?!" plus "b", tick 2 takes "a"
	sched.fire()
	if got := tp.Snapshot().CaretIndex; got != 1 {
		t.Fatalf("caret after first erase tick = %d, want 1", got)
	}
	sched.fire()
	if got := tp.Snapshot().CaretIndex; got != 0 {
		t.Fatalf("caret after second erase tick = %d, want 0", got)
	}
}

func TestSelectBackNeedsExtraTick(t *testing.T) {
	opts := baseOptions("ab")
	opts.EraseStyle = EraseSelectBack
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	for len(rec.events) == 0 || rec.events[len(rec.events)-1] != "typed(ab)" {
		sched.fire()
	}

	sched.fire() // erase tick 1: caret 2 -> 1
	snap := tp.Snapshot()
	if snap.CaretIndex != 1 || snap.Caret != types.CaretSelecting {
		t.Fatalf("tick 1: caret %d state %s, want 1/selecting", snap.CaretIndex, snap.Caret)
	}
	if snap.Chars[1].Tags[0] != types.TagSelected {
		t.Fatalf("trailing char not selected: %v", snap.Chars[1].Tags)
	}

	sched.fire() // tick 2: caret 1 -> 0, previous still 1: not done
	if last := rec.events[len(rec.events)-1]; last == "erased(ab)" {
		t.Fatal("erase completed without the extra selection tick")
	}

	sched.fire() // tick 3: current and previous both 0: done
	if last := rec.events[len(rec.events)-1]; last != "erased(ab)" && last != "completed" {
		t.Fatalf("erase still not done after extra tick: %v", rec.events)
	}
}

func TestSelectAllSingleJump(t *testing.T) {
	opts := baseOptions("word")
	opts.EraseStyle = EraseSelectAll
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	for len(rec.events) == 0 || rec.events[len(rec.events)-1] != "typed(word)" {
		sched.fire()
	}

	sched.fire() // single tick: caret jumps to 0, everything selected
	snap := tp.Snapshot()
	if snap.CaretIndex != 0 {
		t.Fatalf("caret = %d, want 0", snap.CaretIndex)
	}
	for i, c := range snap.Chars {
		if c.Tags[0] != types.TagSelected {
			t.Fatalf("char %d tag = %v, want selected", i, c.Tags[0])
		}
	}

	sched.fire() // extra tick completes
	if last := rec.events[len(rec.events)-1]; last != "erased(word)" && last != "completed" {
		t.Fatalf("unexpected trailing events: %v", rec.events)
	}
}

func TestCaretStaysInBounds(t *testing.T) {
	opts := baseOptions("aa bb!", "c")
	opts.EraseStyle = EraseBackspace
	opts.Fade = "1ws"
	opts.EraseOnComplete = true
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.drain(200)

	if len(rec.snapshots) == 0 {
		t.Fatal("no snapshots recorded")
	}
	for i, snap := range rec.snapshots {
		if snap.CaretIndex < 0 || snap.CaretIndex > len(snap.Chars) {
			t.Fatalf("snapshot %d: caret %d out of [0,%d]", i, snap.CaretIndex, len(snap.Chars))
		}
	}
	if rec.events[len(rec.events)-1] != "completed" {
		t.Fatalf("animation did not complete: %v", rec.events)
	}
	tp.Stop()
}

func TestSlowFadeOutDelaysWordTyped(t *testing.T) {
	opts := baseOptions("aa bb")
	opts.EraseStyle = EraseClear
	opts.EraseOnComplete = true
	opts.Fade = "1ws"
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.fire() // begin typing + first char
	for i := 0; i < 4; i++ {
		sched.fire() // remaining chars; last one opens the fade-out window
	}

	snap := tp.Snapshot()
	if snap.CaretIndex != 5 {
		t.Fatalf("caret = %d, want 5", snap.CaretIndex)
	}
	// offset still 1: everything before the last word carries the fade key
	wantFaded := map[int]bool{0: true, 1: true, 2: true}
	for i, c := range snap.Chars {
		faded := len(c.Tags) > 1 && c.Tags[1] == "faded-1ws"
		if faded != wantFaded[i] {
			t.Fatalf("char %d faded=%v, want %v (%v)", i, faded, wantFaded[i], c.Tags)
		}
	}
	if rec.saw("typed(aa bb)") {
		t.Fatal("word typed before the fade-out finished")
	}

	sched.fire() // fade-out tick: countdown reaches zero, everything fades
	snap = tp.Snapshot()
	for i, c := range snap.Chars {
		if len(c.Tags) < 2 || c.Tags[1] != "faded-1ws" {
			t.Fatalf("char %d not faded after countdown: %v", i, c.Tags)
		}
	}

	sched.fire() // the yielded frame hands over to the word-typed transition
	if !rec.saw("typed(aa bb)") {
		t.Fatalf("typed event missing after fade-out: %v", rec.events)
	}
}

func TestInitialActionErasing(t *testing.T) {
	opts := baseOptions("zap", "two")
	opts.InitialAction = ActionErasing
	opts.EraseStyle = EraseClear
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.drain(100)

	// the first item is treated as already typed: no char/typed events for it
	rec.assertEvents(t,
		"erased(zap)",
		"char(t,0)",
		"char(w,1)",
		"char(o,2)",
		"typed(two)",
		"completed",
	)
}

func TestInitialActionErasingSingleWordCompletes(t *testing.T) {
	opts := baseOptions("X")
	opts.InitialAction = ActionErasing
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.drain(10)

	// last item, no repeats, no erase-on-complete: straight to Complete
	rec.assertEvents(t, "completed")
	if tp.CurrentPhase() != PhaseComplete {
		t.Errorf("phase = %v, want complete", tp.CurrentPhase())
	}
}

func TestRepeatCycles(t *testing.T) {
	opts := baseOptions("a", "b")
	opts.Repeat = 1
	opts.EraseStyle = EraseClear
	tp, sched, rec := newTestTyper(t, opts)

	tp.Start()
	sched.drain(200)

	rec.assertEvents(t,
		"char(a,0)", "typed(a)", "erased(a)",
		"char(b,0)", "typed(b)", "erased(b)", // repeats remain: final word erases
		"char(a,0)", "typed(a)", "erased(a)",
		"char(b,0)", "typed(b)", "completed", // no repeats left, no erase
	)
	if _, _, repeats := tp.SpoolPosition(); repeats != 1 {
		t.Errorf("repeat count = %d, want 1", repeats)
	}
}

func TestReconfigureCancelsPendingTimers(t *testing.T) {
	tp, sched, rec := newTestTyper(t, baseOptions("abcdef"))

	tp.Start()
	sched.fire() // begin typing
	sched.fire() // second char

	next := baseOptions("xy")
	next.EraseStyle = EraseClear
	if err := tp.Reconfigure(next); err != nil {
		t.Fatal(err)
	}
	rec.events = nil

	sched.drain(100)
	rec.assertEvents(t,
		"char(x,0)",
		"char(y,1)",
		"typed(xy)",
		"completed",
	)
}

func TestReconfigureRejectsInvalidOptions(t *testing.T) {
	tp, sched, _ := newTestTyper(t, baseOptions("ok"))
	tp.Start()

	bad := baseOptions()
	if err := tp.Reconfigure(bad); err == nil {
		t.Fatal("Reconfigure accepted empty text")
	}
	var cfgErr *types.ConfigError
	if err := tp.Reconfigure(bad); !errors.As(err, &cfgErr) {
		t.Fatal("error is not a ConfigError")
	}
	// cancellation is synchronous: nothing left to fire
	if sched.drain(10) != 0 {
		t.Error("timers fired after failed reconfigure")
	}
}

func TestStopSilencesCallbacks(t *testing.T) {
	tp, sched, rec := newTestTyper(t, baseOptions("abc"))
	tp.Start()
	sched.fire()
	tp.Stop()

	before := len(rec.events)
	sched.drain(10)
	if len(rec.events) != before {
		t.Errorf("events after Stop: %v", rec.events[before:])
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no text", func(o *Options) { o.Text = nil }},
		{"empty item", func(o *Options) { o.Text = []string{"a", ""} }},
		{"negative repeat", func(o *Options) { o.Repeat = -5 }},
		{"negative delay", func(o *Options) { o.TypeDelay = -time.Millisecond }},
		{"bad fade string", func(o *Options) { o.Fade = "wat" }},
		{"negative fade offset", func(o *Options) { o.Fade = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions("ok")
			tt.mutate(&opts)
			_, err := New(opts, event.NewManager())
			if err == nil {
				t.Fatal("New succeeded, want error")
			}
			var cfgErr *types.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error %v is not a ConfigError", err)
			}
		})
	}
}

func TestTypedText(t *testing.T) {
	tp, sched, _ := newTestTyper(t, baseOptions("héllo"))
	tp.Start()
	sched.fire() // h
	sched.fire() // é
	if got := tp.TypedText(); got != "hé" {
		t.Errorf("TypedText = %q, want %q", got, "hé")
	}
}
