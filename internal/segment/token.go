// internal/segment/token.go
package segment

// Granularity selects the unit a seek or fade steps by.
type Granularity int

const (
	Char Granularity = iota
	Word
	Line
)

func (g Granularity) String() string {
	switch g {
	case Char:
		return "char"
	case Word:
		return "word"
	case Line:
		return "line"
	}
	return "unknown"
}

// Span is a closed range [Start, End] of grapheme indices forming one token.
type Span struct {
	Start int
	End   int
}

// Table holds the tokens of one granularity plus a per-position index.
// byPos maps every grapheme position to the span containing it. Separator
// positions lying between spans map to the next span that will open
// (len(Spans) if none follows), which keeps seeking well defined even
// when the caret sits inside whitespace.
type Table struct {
	Spans []Span
	byPos []int
}

// SpanAt returns the span index recorded for a grapheme position.
func (t Table) SpanAt(pos int) int {
	return t.byPos[pos]
}

// Tables bundles the word and line token tables of one text item.
type Tables struct {
	Word   Table
	Line   Table
	Length int // grapheme count of the underlying text
}

// Tokenize builds word and line tables in a single forward scan.
// A word is a maximal run of non-whitespace clusters; a line is a maximal
// run of clusters between line breaks. Empty runs produce no span.
func Tokenize(graphemes []string) Tables {
	return Tables{
		Word:   scan(graphemes, IsSpace),
		Line:   scan(graphemes, IsNewline),
		Length: len(graphemes),
	}
}

func scan(graphemes []string, isSep func(string) bool) Table {
	t := Table{byPos: make([]int, len(graphemes))}
	open := false
	for i, g := range graphemes {
		if isSep(g) {
			open = false
			t.byPos[i] = len(t.Spans) // next span to open, or one past the last
			continue
		}
		if !open {
			t.Spans = append(t.Spans, Span{Start: i, End: i})
			open = true
		} else {
			t.Spans[len(t.Spans)-1].End = i
		}
		t.byPos[i] = len(t.Spans) - 1
	}
	return t
}
