// internal/spool/spool.go
package spool

import (
	"math/rand"
	"time"

	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/aleontiev/vue-typer/internal/types"
)

// Forever makes the spool repeat without bound.
const Forever = -1

// Spool owns the ordered list of text items being cycled through, plus the
// shuffle and repeat bookkeeping. It is rebuilt (and reshuffled when
// enabled) on construction and on every full repeat cycle.
type Spool struct {
	source  []string // validated items in their configured order
	items   []string // active order for the current cycle
	index   int
	shuffle bool
	repeat  int // extra cycles after the first; Forever for unbounded
	counter int // completed extra cycles so far
	rng     *rand.Rand
}

// New validates the items and builds a spool. rng may be nil, in which case
// a time-seeded source is used; tests inject a seeded one for determinism.
func New(items []string, shuffle bool, repeat int, rng *rand.Rand) (*Spool, error) {
	if len(items) == 0 {
		return nil, types.NewConfigError("text", "at least one item is required")
	}
	for i, item := range items {
		if item == "" {
			return nil, types.NewConfigError("text", "item %d is empty", i)
		}
	}
	if repeat < Forever {
		return nil, types.NewConfigError("repeat", "must be non-negative or Forever, got %d", repeat)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Spool{
		source:  append([]string(nil), items...),
		shuffle: shuffle,
		repeat:  repeat,
		rng:     rng,
	}
	s.rebuild()
	return s, nil
}

// rebuild copies the source order and reshuffles it when enabled.
func (s *Spool) rebuild() {
	s.items = append(s.items[:0], s.source...)
	if s.shuffle {
		s.rng.Shuffle(len(s.items), func(i, j int) {
			s.items[i], s.items[j] = s.items[j], s.items[i]
		})
	}
	s.index = 0
}

// Current returns the active text item.
func (s *Spool) Current() string {
	return s.items[s.index]
}

// Index returns the position of the active item within the current cycle.
func (s *Spool) Index() int {
	return s.index
}

// Len returns the number of items per cycle.
func (s *Spool) Len() int {
	return len(s.items)
}

// AtLast reports whether the active item is the final one of this cycle.
func (s *Spool) AtLast() bool {
	return s.index == len(s.items)-1
}

// Advance moves to the next item. It reports false (and stays put) when the
// active item is already the last one; use Restart to begin a new cycle.
func (s *Spool) Advance() bool {
	if s.AtLast() {
		return false
	}
	s.index++
	return true
}

// RepeatsRemain reports whether another full cycle may begin.
func (s *Spool) RepeatsRemain() bool {
	return s.repeat == Forever || s.counter < s.repeat
}

// RepeatCount returns the number of completed extra cycles.
func (s *Spool) RepeatCount() int {
	return s.counter
}

// Restart consumes one repetition and rebuilds the cycle from item zero.
func (s *Spool) Restart() {
	s.counter++
	s.rebuild()
	logger.DebugTagf("spool", "restarted cycle %d (shuffle=%v)", s.counter, s.shuffle)
}

// Reset rebuilds the spool from scratch, clearing the repeat counter.
func (s *Spool) Reset() {
	s.counter = 0
	s.rebuild()
}
