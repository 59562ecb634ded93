// internal/typer/options.go
package typer

import (
	"time"

	"github.com/aleontiev/vue-typer/internal/fade"
	"github.com/aleontiev/vue-typer/internal/spool"
	"github.com/aleontiev/vue-typer/internal/types"
)

// Default timer intervals, matching the component the engine is drawn from.
const (
	DefaultPreTypeDelay  = 70 * time.Millisecond
	DefaultTypeDelay     = 70 * time.Millisecond
	DefaultPreEraseDelay = 2000 * time.Millisecond
	DefaultEraseDelay    = 250 * time.Millisecond
)

// Options is the full animation configuration. Validation happens at
// construction and on every reconfiguration; an invalid Options never arms
// a timer.
type Options struct {
	// Text is the list of items to cycle through. Every item must be
	// non-empty.
	Text []string

	// Repeat is the number of extra cycles after the first;
	// spool.Forever means unbounded.
	Repeat int

	// Shuffle randomizes item order on every (re)build of the spool.
	Shuffle bool

	// InitialAction is the phase the animation starts in. Starting with
	// ActionErasing treats the first item as already typed.
	InitialAction Action

	PreTypeDelay  time.Duration
	TypeDelay     time.Duration
	PreEraseDelay time.Duration
	EraseDelay    time.Duration

	EraseStyle EraseStyle

	// EraseOnComplete erases the final word before entering Complete.
	EraseOnComplete bool

	// Fade accepts any shape understood by fade.Normalize: nil, bool,
	// number, grammar string, object map, fade.Spec, or a sequence.
	Fade interface{}
}

// DefaultOptions returns the baseline configuration: repeat forever,
// select-all erasing, no shuffle, no fades.
func DefaultOptions() Options {
	return Options{
		Repeat:        spool.Forever,
		PreTypeDelay:  DefaultPreTypeDelay,
		TypeDelay:     DefaultTypeDelay,
		PreEraseDelay: DefaultPreEraseDelay,
		EraseDelay:    DefaultEraseDelay,
		EraseStyle:    EraseSelectAll,
	}
}

// Validate checks every option and returns the normalized fade specs.
// All failures are *types.ConfigError.
func (o Options) Validate() ([]fade.Spec, error) {
	if len(o.Text) == 0 {
		return nil, types.NewConfigError("text", "at least one item is required")
	}
	for i, item := range o.Text {
		if item == "" {
			return nil, types.NewConfigError("text", "item %d is empty", i)
		}
	}
	if o.Repeat < spool.Forever {
		return nil, types.NewConfigError("repeat", "must be non-negative or unbounded, got %d", o.Repeat)
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"preTypeDelay", o.PreTypeDelay},
		{"typeDelay", o.TypeDelay},
		{"preEraseDelay", o.PreEraseDelay},
		{"eraseDelay", o.EraseDelay},
	} {
		if d.value < 0 {
			return nil, types.NewConfigError(d.name, "must be non-negative, got %v", d.value)
		}
	}
	if o.InitialAction != ActionTyping && o.InitialAction != ActionErasing {
		return nil, types.NewConfigError("initialAction", "unknown action %d", o.InitialAction)
	}
	if o.EraseStyle < EraseBackspace || o.EraseStyle > EraseClear {
		return nil, types.NewConfigError("eraseStyle", "unknown style %d", o.EraseStyle)
	}

	specs, err := fade.Normalize(o.Fade)
	if err != nil {
		return nil, err
	}
	return specs, nil
}
