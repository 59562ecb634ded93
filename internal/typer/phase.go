// internal/typer/phase.go
package typer

import "github.com/aleontiev/vue-typer/internal/types"

// Phase describes the current animation activity. Exactly one phase is
// active at any time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhaseErasing
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTyping:
		return "typing"
	case PhaseErasing:
		return "erasing"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Action selects the phase the animation starts in.
type Action int

const (
	ActionTyping Action = iota
	ActionErasing
)

// ParseAction converts a config string to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "", "typing":
		return ActionTyping, nil
	case "erasing":
		return ActionErasing, nil
	}
	return ActionTyping, types.NewConfigError("initialAction", "unknown action %q", s)
}

func (a Action) String() string {
	if a == ActionErasing {
		return "erasing"
	}
	return "typing"
}

// EraseStyle selects the erase algorithm.
type EraseStyle int

const (
	EraseBackspace EraseStyle = iota
	EraseSelectBack
	EraseSelectAll
	EraseClear
)

// ParseEraseStyle converts a config string to an EraseStyle. Raw strings
// are inspected here and nowhere else.
func ParseEraseStyle(s string) (EraseStyle, error) {
	switch s {
	case "backspace":
		return EraseBackspace, nil
	case "select-back":
		return EraseSelectBack, nil
	case "", "select-all":
		return EraseSelectAll, nil
	case "clear":
		return EraseClear, nil
	}
	return EraseSelectAll, types.NewConfigError("eraseStyle", "unknown style %q", s)
}

func (e EraseStyle) String() string {
	switch e {
	case EraseBackspace:
		return "backspace"
	case EraseSelectBack:
		return "select-back"
	case EraseSelectAll:
		return "select-all"
	case EraseClear:
		return "clear"
	}
	return "unknown"
}

// selects reports whether the style marks characters as selected (and
// therefore needs the extra completion tick) instead of erasing outright.
func (e EraseStyle) selects() bool {
	return e == EraseSelectBack || e == EraseSelectAll
}
