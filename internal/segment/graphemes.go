// internal/segment/graphemes.go
package segment

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Split breaks text into grapheme clusters (user-perceived characters).
// All indexing elsewhere in the engine is over the returned slice, never
// over bytes or runes, so combining marks and emoji count as one position.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	clusters := make([]string, 0, len(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// Width returns the terminal cell width of a single grapheme cluster.
func Width(cluster string) int {
	return uniseg.StringWidth(cluster)
}

// IsSpace reports whether a grapheme cluster is entirely whitespace.
func IsSpace(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}

// IsNewline reports whether a grapheme cluster is a line break.
// uniseg yields "\r\n" as a single cluster.
func IsNewline(cluster string) bool {
	switch cluster {
	case "\n", "\r", "\r\n":
		return true
	}
	return false
}

// IsWordChar reports whether a grapheme cluster belongs to a word for the
// purposes of backspace-style erasing: it contains at least one letter,
// digit or underscore.
func IsWordChar(cluster string) bool {
	for _, r := range cluster {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}
