// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // theme name (lowercase) -> Theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
}

// NewManager creates a manager with the built-in theme plus any custom
// themes found under the user's config directory.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}

	mgr.themes[strings.ToLower(TypewriterDark.Name)] = &TypewriterDark

	if mgr.themesDir != "" {
		if err := mgr.loadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", mgr.themesDir, err)
		}
	}

	mgr.activeTheme = &TypewriterDark
	return mgr
}

// DefaultThemesDir returns the per-user custom theme directory, or "" when
// the config dir cannot be determined.
func DefaultThemesDir(appDir, themesDir string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v. Custom themes disabled.", err)
		return ""
	}
	return filepath.Join(configDir, appDir, themesDir)
}

// loadThemesFromDir scans the themes directory and loads .toml files.
func (m *Manager) loadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}
		nameLower := strings.ToLower(theme.Name)
		if existing, ok := m.themes[nameLower]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
		}
		m.themes[nameLower] = theme
		loadedCount++
	}
	if loadedCount > 0 {
		logger.Infof("Loaded %d custom theme(s) from %s", loadedCount, m.themesDir)
	}
	return nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "Failsafe", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != theme {
		m.activeTheme = theme
		SetCurrentTheme(theme)
	}
	return nil
}

// ListThemes returns the names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	return names
}
