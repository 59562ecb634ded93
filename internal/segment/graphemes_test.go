package segment

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "ascii",
			text: "Hi",
			want: []string{"H", "i"},
		},
		{
			name: "combining mark is one cluster",
			text: "éx", // é as e + combining acute
			want: []string{"é", "x"},
		},
		{
			name: "emoji with modifier",
			text: "a👍🏽b",
			want: []string{"a", "👍🏽", "b"},
		},
		{
			name: "crlf is one cluster",
			text: "a\r\nb",
			want: []string{"a", "\r\n", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q) = %d clusters, want %d", tt.text, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cluster %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRoundTrip(t *testing.T) {
	texts := []string{"hello world", "héllo\nwörld", "👩‍👩‍👧 family", "  spaced  "}
	for _, text := range texts {
		if got := strings.Join(Split(text), ""); got != text {
			t.Errorf("join(Split(%q)) = %q", text, got)
		}
	}
}

func TestIsWordChar(t *testing.T) {
	for _, g := range []string{"a", "Z", "0", "_", "é", "ß"} {
		if !IsWordChar(g) {
			t.Errorf("IsWordChar(%q) = false, want true", g)
		}
	}
	for _, g := range []string{" ", "!", ".", ",", "\n", "-"} {
		if IsWordChar(g) {
			t.Errorf("IsWordChar(%q) = true, want false", g)
		}
	}
}

func TestIsNewline(t *testing.T) {
	for _, g := range []string{"\n", "\r", "\r\n"} {
		if !IsNewline(g) {
			t.Errorf("IsNewline(%q) = false, want true", g)
		}
	}
	if IsNewline(" ") {
		t.Error("IsNewline(space) = true, want false")
	}
}
