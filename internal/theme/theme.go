// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/aleontiev/vue-typer/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps decoration names to terminal styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style by name. Lookup order: exact name, the part
// before the first dot, then progressively shorter dash-prefixes (so a
// fade key like "faded-2ws" resolves to "faded"), and finally "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	base := name
	for {
		dashIndex := strings.LastIndex(base, "-")
		if dashIndex == -1 {
			break
		}
		base = base[:dashIndex]
		if style, ok := t.Styles[base]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Typewriter Dark Theme Definition ---

var TypewriterDark Theme

func init() {
	twBackground := tcell.NewHexColor(0x2a2f38) // Muted dark blue/grey (StatusBar BG)
	twForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (typed text)
	twMuted := tcell.NewHexColor(0x5c6370)      // Muted grey (untyped, faded)
	twYellow := tcell.NewHexColor(0xe5c07b)     // Soft yellow (caret)
	twGreen := tcell.NewHexColor(0x98c379)      // Soft green (phase indicator)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(twForeground)

	TypewriterDark = Theme{
		Name:   "Typewriter Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":  baseStyle,
			"typed":    baseStyle,
			"untyped":  baseStyle.Foreground(twMuted).Dim(true),
			"selected": baseStyle.Reverse(true),
			"erased":   baseStyle.Foreground(twMuted).Dim(true),
			"faded":    baseStyle.Foreground(twMuted).Italic(true),
			"caret":    baseStyle.Foreground(twYellow).Bold(true),

			"StatusBar":        tcell.StyleDefault.Background(twBackground).Foreground(twForeground),
			"StatusBarPhase":   tcell.StyleDefault.Background(twBackground).Foreground(twGreen).Bold(true),
			"StatusBarMessage": tcell.StyleDefault.Background(twBackground).Foreground(twForeground).Bold(true),
			"StatusBarCounter": tcell.StyleDefault.Background(twBackground).Foreground(twYellow),
		},
	}

	CurrentTheme = &TypewriterDark
}

// CurrentTheme is the process-wide active theme.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &TypewriterDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
