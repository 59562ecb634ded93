// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/aleontiev/vue-typer/internal/config"
	"github.com/aleontiev/vue-typer/internal/event"
	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/aleontiev/vue-typer/internal/statusbar"
	"github.com/aleontiev/vue-typer/internal/theme"
	"github.com/aleontiev/vue-typer/internal/tui"
	"github.com/aleontiev/vue-typer/internal/typer"
	"github.com/aleontiev/vue-typer/internal/types"
	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the engine, screen and status bar and runs the main loop.
type App struct {
	tuiManager   *tui.TUI
	engine       *typer.Typer
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	themeManager *theme.Manager
	activeTheme  *theme.Theme
	cfg          *config.Config

	// Channels managed by the App
	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}

	// latest engine snapshot, written by the StateChanged handler and read
	// by the drawing loop
	snapMu       sync.Mutex
	lastSnapshot types.Snapshot
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	themeManager := theme.NewManager(theme.DefaultThemesDir(config.ConfigDirName, config.ThemesDirName))
	if cfg.UI.Theme != "" {
		if err := themeManager.SetTheme(cfg.UI.Theme); err != nil {
			logger.Warnf("App: %v, keeping default theme", err)
		}
	}
	activeTheme := themeManager.Current()

	statusBar := statusbar.New(statusbar.Config{
		StyleDefault:   activeTheme.GetStyle("StatusBar"),
		StylePhase:     activeTheme.GetStyle("StatusBarPhase"),
		StyleMessage:   activeTheme.GetStyle("StatusBarMessage"),
		MessageTimeout: config.MessageTimeout,
	})

	eventManager := event.NewManager()

	opts, err := cfg.Typer.ToOptions()
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	engine, err := typer.New(opts, eventManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	appInstance := &App{
		tuiManager:    tuiManager,
		engine:        engine,
		statusBar:     statusBar,
		eventManager:  eventManager,
		themeManager:  themeManager,
		activeTheme:   activeTheme,
		cfg:           cfg,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
		lastSnapshot:  engine.Snapshot(),
	}

	// The engine dispatches StateChanged while holding its own lock, so
	// these handlers only stash data and signal; they never call back in.
	eventManager.Subscribe(event.TypeStateChanged, appInstance.handleStateChanged)
	eventManager.Subscribe(event.TypeWordTyped, func(e event.Event) bool {
		logger.DebugTagf("app", "word typed: %q", e.Data.(event.WordTypedData).Text)
		return false
	})
	eventManager.Subscribe(event.TypeWordErased, func(e event.Event) bool {
		logger.DebugTagf("app", "word erased: %q", e.Data.(event.WordErasedData).Text)
		return false
	})
	eventManager.Subscribe(event.TypeCompleted, appInstance.handleCompleted)

	return appInstance, nil
}

// Run starts the application's event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("typer - r restart | y yank | ESC quit")
	a.engine.Start()
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			a.engine.Stop()
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			a.requestRedraw()

		case *tcell.EventKey:
			if a.handleKeyEvent(eventData) {
				a.requestRedraw()
			}
		}
	}
}

// handleKeyEvent reacts to the small control surface: restart, yank, quit.
func (a *App) handleKeyEvent(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		a.signalQuit()
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		a.signalQuit()
		return false
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
		a.engine.Restart()
		a.statusBar.SetTemporaryMessage("restarted")
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
		text := a.engine.TypedText()
		if err := clipboard.WriteAll(text); err != nil {
			logger.Warnf("App: clipboard write failed: %v", err)
			a.statusBar.SetTemporaryMessage("clipboard unavailable")
		} else {
			a.statusBar.SetTemporaryMessage("yanked %d byte(s)", len(text))
		}
		return true
	}
	return false
}

func (a *App) signalQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleStateChanged(e event.Event) bool {
	if data, ok := e.Data.(event.StateChangedData); ok {
		a.snapMu.Lock()
		a.lastSnapshot = data.Snapshot
		a.snapMu.Unlock()
		a.statusBar.SetPhase(string(data.Snapshot.Caret))
		a.requestRedraw()
	}
	return false
}

func (a *App) handleCompleted(e event.Event) bool {
	a.statusBar.SetTemporaryMessage("complete - r to restart")
	a.requestRedraw()
	return false
}

// --- Drawing ---

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.snapMu.Lock()
	snap := a.lastSnapshot
	a.snapMu.Unlock()

	index, count, repeats := a.engine.SpoolPosition()
	a.statusBar.SetSpoolInfo(index, count, repeats, a.cfg.Typer.Repeat)

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawSnapshot(a.tuiManager, snap, a.activeTheme, !a.cfg.UI.HideCaret)
	if !a.cfg.UI.HideStatusBar {
		a.statusBar.Draw(screen, width, height)
	}
	a.tuiManager.Show()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}
