// internal/types/decoration.go
package types

// Tag classifies a single grapheme in the animation output contract.
// The four base tags are mutually exclusive; fade keys are layered on top
// as additional Tag values (e.g. "faded", "faded-2ws").
type Tag string

const (
	TagTyped    Tag = "typed"
	TagUntyped  Tag = "untyped"
	TagSelected Tag = "selected"
	TagErased   Tag = "erased"
)

// CaretState describes the caret's own visual state.
type CaretState string

const (
	CaretIdle      CaretState = "idle"
	CaretPreType   CaretState = "pre-type"
	CaretPreErase  CaretState = "pre-erase"
	CaretTyping    CaretState = "typing"
	CaretSelecting CaretState = "selecting"
	CaretErasing   CaretState = "erasing"
	CaretComplete  CaretState = "complete"
)

// CharState is the decoration of one grapheme: the base tag first,
// then any active fade keys in spec order.
type CharState struct {
	Char string
	Tags []Tag
}

// Snapshot is the full read-only decoration state handed to a renderer.
// Renderers must not mutate it; the engine rebuilds it on every change.
type Snapshot struct {
	Text       string      // the active text item
	Chars      []CharState // one entry per grapheme
	Caret      CaretState
	CaretIndex int // grapheme index in [0, len(Chars)]
}
