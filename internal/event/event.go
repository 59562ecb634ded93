// internal/event/event.go
package event

import "github.com/aleontiev/vue-typer/internal/types"

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Animation lifecycle events
	TypeCharTyped    // Fired for every grapheme the engine types
	TypeWordTyped    // Fired when an item finishes typing (after its fade-out)
	TypeWordErased   // Fired when an item finishes erasing
	TypeCompleted    // Fired once, when the whole spool is done
	TypeStateChanged // Fired on every caret/phase/fade change with a fresh snapshot

	// Application lifecycle events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific event data structures ---

// CharTypedData carries one typed grapheme and its pre-advance index.
type CharTypedData struct {
	Char  string
	Index int
}

// WordTypedData carries the fully typed text item.
type WordTypedData struct {
	Text string
}

// WordErasedData carries the text item that was just erased.
type WordErasedData struct {
	Text string
}

// CompletedData marks terminal completion of the animation.
type CompletedData struct{}

// StateChangedData carries the rebuilt decoration snapshot for renderers.
type StateChangedData struct {
	Snapshot types.Snapshot
}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}
