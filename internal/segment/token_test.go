package segment

import (
	"strings"
	"testing"
)

func TestTokenizeWords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		spans []Span
		byPos []int
	}{
		{
			name:  "single word",
			text:  "abc",
			spans: []Span{{0, 2}},
			byPos: []int{0, 0, 0},
		},
		{
			name:  "two words",
			text:  "ab cd",
			spans: []Span{{0, 1}, {3, 4}},
			// the gap position points at the span about to open
			byPos: []int{0, 0, 1, 1, 1},
		},
		{
			name:  "leading and trailing space",
			text:  " a ",
			spans: []Span{{1, 1}},
			byPos: []int{0, 0, 1},
		},
		{
			name:  "whitespace run between words",
			text:  "a  b",
			spans: []Span{{0, 0}, {3, 3}},
			byPos: []int{0, 1, 1, 1},
		},
		{
			name:  "only whitespace",
			text:  "  ",
			spans: nil,
			byPos: []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := Tokenize(Split(tt.text))
			w := tables.Word
			if len(w.Spans) != len(tt.spans) {
				t.Fatalf("got %d spans, want %d (%v)", len(w.Spans), len(tt.spans), w.Spans)
			}
			for i, sp := range tt.spans {
				if w.Spans[i] != sp {
					t.Errorf("span %d = %v, want %v", i, w.Spans[i], sp)
				}
			}
			for pos, want := range tt.byPos {
				if got := w.SpanAt(pos); got != want {
					t.Errorf("SpanAt(%d) = %d, want %d", pos, got, want)
				}
			}
		})
	}
}

func TestTokenizeLines(t *testing.T) {
	tables := Tokenize(Split("ab\ncd e\n\nf"))
	want := []Span{{0, 1}, {3, 6}, {9, 9}}
	l := tables.Line
	if len(l.Spans) != len(want) {
		t.Fatalf("got %d line spans, want %d (%v)", len(l.Spans), len(want), l.Spans)
	}
	for i, sp := range want {
		if l.Spans[i] != sp {
			t.Errorf("line span %d = %v, want %v", i, l.Spans[i], sp)
		}
	}
	// the blank line between spans 1 and 2 points at span 2
	if got := l.SpanAt(8); got != 2 {
		t.Errorf("SpanAt(8) = %d, want 2", got)
	}
}

// Every grapheme position gets exactly one word slot and one line slot, and
// concatenating word spans in order reproduces the text minus whitespace.
func TestTokenizeCoverage(t *testing.T) {
	texts := []string{
		"hello world",
		"  leading, trailing!  ",
		"one\ntwo three\r\nfour",
		"émoji 👍🏽 mix\t tabs",
		"",
	}
	for _, text := range texts {
		graphemes := Split(text)
		tables := Tokenize(graphemes)

		for _, tb := range []Table{tables.Word, tables.Line} {
			for pos := range graphemes {
				si := tb.SpanAt(pos)
				if si < 0 || si > len(tb.Spans) {
					t.Fatalf("%q: SpanAt(%d) = %d out of range", text, pos, si)
				}
				if si < len(tb.Spans) {
					sp := tb.Spans[si]
					if pos > sp.End {
						t.Errorf("%q: position %d indexed to span %v behind it", text, pos, sp)
					}
				}
			}
			for i, sp := range tb.Spans {
				if sp.Start > sp.End {
					t.Errorf("%q: inverted span %v", text, sp)
				}
				if i > 0 && sp.Start <= tb.Spans[i-1].End {
					t.Errorf("%q: overlapping spans %v, %v", text, tb.Spans[i-1], sp)
				}
			}
		}

		var b strings.Builder
		for _, sp := range tables.Word.Spans {
			b.WriteString(strings.Join(graphemes[sp.Start:sp.End+1], ""))
		}
		stripped := strings.Join(strings.Fields(text), "")
		if b.String() != stripped {
			t.Errorf("%q: word spans concat to %q, want %q", text, b.String(), stripped)
		}
	}
}
