// internal/tui/drawing.go
package tui

import (
	"github.com/aleontiev/vue-typer/internal/segment"
	"github.com/aleontiev/vue-typer/internal/theme"
	"github.com/aleontiev/vue-typer/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// cell is one renderable grapheme with its position in the snapshot.
type cell struct {
	char  types.CharState
	index int
	width int
}

// layoutLines splits the snapshot's characters into display lines. Newline
// graphemes terminate a line and are not rendered themselves.
func layoutLines(chars []types.CharState) [][]cell {
	lines := [][]cell{{}}
	for i, c := range chars {
		if segment.IsNewline(c.Char) {
			lines = append(lines, []cell{})
			continue
		}
		cur := len(lines) - 1
		lines[cur] = append(lines[cur], cell{char: c, index: i, width: segment.Width(c.Char)})
	}
	return lines
}

func lineWidth(line []cell) int {
	w := 0
	for _, c := range line {
		w += c.width
	}
	return w
}

// styleFor picks the style for a character from its decoration tags. Later
// tags (fade keys) take precedence over the base tag.
func styleFor(c types.CharState, activeTheme *theme.Theme) (tcell.Style, bool) {
	if len(c.Tags) == 0 {
		return activeTheme.GetStyle("Default"), false
	}
	base := c.Tags[0]
	// untyped and erased characters keep their footprint but stay blank
	visible := base != types.TagUntyped && base != types.TagErased
	return activeTheme.GetStyle(string(c.Tags[len(c.Tags)-1])), visible
}

// DrawSnapshot renders a decoration snapshot centered on the screen, with
// the caret placed at the snapshot's caret index.
func DrawSnapshot(tuiManager *TUI, snap types.Snapshot, activeTheme *theme.Theme, showCaret bool) {
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}

	screen := tuiManager.GetScreen()
	width, height := tuiManager.Size()
	viewHeight := height - 1 // last row belongs to the status bar
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lines := layoutLines(snap.Chars)
	startY := (viewHeight - len(lines)) / 2
	if startY < 0 {
		startY = 0
	}

	caretX, caretY := -1, -1
	for row, line := range lines {
		y := startY + row
		if y >= viewHeight {
			break
		}
		x := (width - lineWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		if snap.CaretIndex >= len(snap.Chars) && row == len(lines)-1 {
			// caret past the final grapheme sits at the end of the last line
			caretX, caretY = x+lineWidth(line), y
		}
		for _, c := range line {
			if c.index == snap.CaretIndex {
				caretX, caretY = x, y
			}
			style, visible := styleFor(c.char, activeTheme)
			if visible {
				drawGrapheme(screen, x, y, c.char.Char, style)
			} else {
				for dx := 0; dx < c.width; dx++ {
					screen.SetContent(x+dx, y, ' ', nil, style)
				}
			}
			x += c.width
		}
	}

	if showCaret && caretX >= 0 && caretX < width {
		screen.ShowCursor(caretX, caretY)
	} else {
		screen.HideCursor()
	}
}

// drawGrapheme renders a single grapheme cluster, letting tcell combine
// any trailing runes.
func drawGrapheme(screen tcell.Screen, x, y int, g string, style tcell.Style) {
	gr := uniseg.NewGraphemes(g)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		var combining []rune
		if len(runes) > 1 {
			combining = runes[1:]
		}
		screen.SetContent(x, y, runes[0], combining, style)
		x += gr.Width()
	}
}
