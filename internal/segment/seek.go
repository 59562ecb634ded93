// internal/segment/seek.go
package segment

// Seek resolves "offset tokens away from index" to a grapheme boundary.
// The boolean is false when the step runs off either end of the token list
// ("none"): the caller treats that as no boundary at all.
//
// Char steps are plain arithmetic with no upper clamp; callers bound the
// result against the text length themselves. Word and Line steps walk the
// span table. Moving backward, the current span counts as step 0, so the
// first backward step lands on the current span's start boundary; moving
// forward lands on the target span's end boundary.
func (t Tables) Seek(index, offset int, g Granularity) (int, bool) {
	if index == t.Length && offset == 0 {
		return t.Length, true
	}

	if g == Char {
		r := index + offset
		if r < 0 {
			return 0, false
		}
		return r, true
	}

	tb := t.Word
	if g == Line {
		tb = t.Line
	}

	i := index
	if i >= t.Length {
		i = t.Length - 1
	}
	if i < 0 || len(tb.Spans) == 0 {
		return 0, false
	}

	si := tb.byPos[i]
	if offset < 0 {
		target := si + offset + 1
		if target < 0 || target >= len(tb.Spans) {
			return 0, false
		}
		return tb.Spans[target].Start, true
	}

	target := si + offset
	if target >= len(tb.Spans) {
		return 0, false
	}
	return tb.Spans[target].End + 1, true
}
