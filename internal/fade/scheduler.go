// internal/fade/scheduler.go
package fade

import (
	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/aleontiev/vue-typer/internal/segment"
	"github.com/aleontiev/vue-typer/internal/types"
)

// Scheduler computes fade boundaries for the active text. It owns no timers:
// the typing clock calls BeginOut/TickOut and the boundaries are derived,
// never patched incrementally, so independent fades cannot drift apart.
type Scheduler struct {
	specs  []Spec
	tables segment.Tables

	// out is only populated between "typing finished" and "erase started".
	// It maps a spec key to its remaining offset: Slow entries count down,
	// Fast entries start at zero, None specs have no entry.
	out map[string]int
}

// NewScheduler creates a scheduler with no active specs.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Reset installs the normalized specs and the token tables of a new active
// text, clearing any fade-out state.
func (s *Scheduler) Reset(specs []Spec, tables segment.Tables) {
	s.specs = specs
	s.tables = tables
	s.out = nil
	if len(specs) > 0 {
		logger.DebugTagf("fade", "scheduler reset with %d spec(s), text length %d", len(specs), tables.Length)
	}
}

// Specs returns the installed descriptors.
func (s *Scheduler) Specs() []Spec {
	return s.specs
}

// effectiveOffset is the spec's offset during normal typing, and its
// countdown value during the terminal fade-out.
func (s *Scheduler) effectiveOffset(spec Spec) int {
	if s.out != nil {
		if remaining, ok := s.out[spec.Key]; ok {
			return remaining
		}
	}
	return spec.Offset
}

// Boundary resolves the current fade boundary of one spec for a caret
// position. The boolean is false when no boundary exists (nothing fades).
func (s *Scheduler) Boundary(spec Spec, caret int) (int, bool) {
	b, ok := s.tables.Seek(caret, -s.effectiveOffset(spec), spec.Granularity)
	if !ok {
		return 0, false
	}
	// Seek does not clamp Char arithmetic; bound for display.
	if b > s.tables.Length {
		b = s.tables.Length
	}
	return b, true
}

// Boundaries recomputes every spec's boundary from scratch.
func (s *Scheduler) Boundaries(caret int) map[string]int {
	if len(s.specs) == 0 {
		return nil
	}
	bounds := make(map[string]int, len(s.specs))
	for _, spec := range s.specs {
		if b, ok := s.Boundary(spec, caret); ok {
			bounds[spec.Key] = b
		}
	}
	return bounds
}

// Classify returns, in spec order, the fade keys carried by the grapheme at
// charIndex: a character carries key k iff charIndex < boundary(k).
func (s *Scheduler) Classify(caret, charIndex int) []types.Tag {
	var keys []types.Tag
	for _, spec := range s.specs {
		b, ok := s.Boundary(spec, caret)
		if ok && charIndex < b {
			keys = append(keys, types.Tag(spec.Key))
		}
	}
	return keys
}

// BeginOut starts the terminal fade-out sequence when typing reaches the
// end of the text. Fast specs collapse immediately, Slow specs arm their
// countdown, None specs stay out of the map entirely.
func (s *Scheduler) BeginOut() {
	s.out = make(map[string]int)
	for _, spec := range s.specs {
		switch spec.Out {
		case OutFast:
			s.out[spec.Key] = 0
		case OutSlow:
			s.out[spec.Key] = spec.Offset
		}
	}
}

// TickOut advances the fade-out countdown by one tick.
func (s *Scheduler) TickOut() {
	for key, remaining := range s.out {
		if remaining > 0 {
			s.out[key] = remaining - 1
		}
	}
}

// OutDone reports whether every spec with a non-None policy has finished
// counting down. True when no fade-out is in progress at all.
func (s *Scheduler) OutDone() bool {
	for _, remaining := range s.out {
		if remaining > 0 {
			return false
		}
	}
	return true
}

// OutActive reports whether the terminal fade-out window is open.
func (s *Scheduler) OutActive() bool {
	return s.out != nil
}

// EndOut closes the fade-out window (erase started or text changed).
func (s *Scheduler) EndOut() {
	s.out = nil
}
