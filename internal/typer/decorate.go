// internal/typer/decorate.go
package typer

import "github.com/aleontiev/vue-typer/internal/types"

// buildSnapshot derives the per-character decoration from current state
// (phase, caret, fade countdowns). It is recomputed in full on every
// change, never patched, so independent timers cannot leave stale tags
// behind. Caller must hold the mutex.
func (t *Typer) buildSnapshot() types.Snapshot {
	chars := make([]types.CharState, len(t.graphemes))
	for i, g := range t.graphemes {
		tags := append([]types.Tag{t.baseTag(i)}, t.fades.Classify(t.cur, i)...)
		chars[i] = types.CharState{Char: g, Tags: tags}
	}
	return types.Snapshot{
		Text:       t.text,
		Chars:      chars,
		Caret:      t.caretState(),
		CaretIndex: t.cur,
	}
}

// baseTag classifies one grapheme position relative to the caret.
func (t *Typer) baseTag(i int) types.Tag {
	if i < t.cur {
		return types.TagTyped
	}
	switch t.phase {
	case PhaseErasing:
		if t.opts.EraseStyle.selects() {
			return types.TagSelected
		}
		return types.TagErased
	case PhaseComplete:
		if t.cur == 0 {
			return types.TagErased
		}
		return types.TagUntyped
	default:
		return types.TagUntyped
	}
}

// caretState maps phase and pending phase to the caret descriptor.
func (t *Typer) caretState() types.CaretState {
	switch t.phase {
	case PhaseTyping:
		return types.CaretTyping
	case PhaseErasing:
		if t.opts.EraseStyle.selects() {
			return types.CaretSelecting
		}
		return types.CaretErasing
	case PhaseComplete:
		return types.CaretComplete
	}
	switch t.pending {
	case PhaseTyping:
		return types.CaretPreType
	case PhaseErasing:
		return types.CaretPreErase
	}
	return types.CaretIdle
}
