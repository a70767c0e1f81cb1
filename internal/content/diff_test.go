package content

import (
	"reflect"
	"testing"
)

func reconstruct(segments []Segment, include map[SegmentType]bool) string {
	out := ""
	for _, s := range segments {
		if include[s.Type] {
			out += s.Text
		}
	}
	return out
}

func TestDiffTextsRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		oldText  string
		newText  string
	}{
		{"identical", "hello world", "hello world"},
		{"insert word", "hello world", "hello there world"},
		{"remove word", "hello there world", "hello world"},
		{"replace word", "the quick fox", "the lazy fox"},
		{"whitespace change", "a  b", "a b"},
		{"multiline", "line one\nline two", "line one\nline three\nline two"},
		{"both empty", "", ""},
		{"old empty", "", "hello world"},
		{"new empty", "hello world", ""},
		{"unicode", "héllo wörld", "héllo wide wörld"},
		{"invalid utf8", "raw \xff bytes", "raw \xfe bytes"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			segments := DiffTexts(tt.oldText, tt.newText)
			oldSide := reconstruct(segments, map[SegmentType]bool{SegmentUnchanged: true, SegmentRemoved: true})
			if oldSide != tt.oldText {
				t.Errorf("old side reconstruction = %q, want %q", oldSide, tt.oldText)
			}
			newSide := reconstruct(segments, map[SegmentType]bool{SegmentUnchanged: true, SegmentAdded: true})
			if newSide != tt.newText {
				t.Errorf("new side reconstruction = %q, want %q", newSide, tt.newText)
			}
			for i := 1; i < len(segments); i++ {
				if segments[i].Type == segments[i-1].Type {
					t.Errorf("adjacent segments %d and %d share type %s", i-1, i, segments[i].Type)
				}
			}
		})
	}
}

func TestDiffTextsIdentity(t *testing.T) {
	segments := DiffTexts("hello world", "hello world")
	want := []Segment{{Type: SegmentUnchanged, Text: "hello world"}}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("DiffTexts identity = %v, want %v", segments, want)
	}
	if got := DiffTexts("", ""); len(got) != 0 {
		t.Errorf("DiffTexts on empty inputs = %v, want none", got)
	}
}

func TestDiffTextsDisjoint(t *testing.T) {
	added := DiffTexts("", "hello world")
	if !reflect.DeepEqual(added, []Segment{{Type: SegmentAdded, Text: "hello world"}}) {
		t.Errorf("all-added diff = %v", added)
	}
	removed := DiffTexts("hello world", "")
	if !reflect.DeepEqual(removed, []Segment{{Type: SegmentRemoved, Text: "hello world"}}) {
		t.Errorf("all-removed diff = %v", removed)
	}
}

func TestDiffTextsInsertion(t *testing.T) {
	segments := DiffTexts("hello world", "hello there world")
	want := []Segment{
		{Type: SegmentUnchanged, Text: "hello"},
		{Type: SegmentAdded, Text: " there"},
		{Type: SegmentUnchanged, Text: " world"},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("DiffTexts = %v, want %v", segments, want)
	}
}

func TestSplitTokensPreservesInput(t *testing.T) {
	cases := []string{"", "a", " ", "a b", " a  b\tc\n", "\n\n", "héllo  wörld",
		"bad \xff\xfe bytes", "truncated \xc3 rune"}
	for _, input := range cases {
		tokens := splitTokens(input)
		joined := ""
		for _, tok := range tokens {
			joined += tok
		}
		if joined != input {
			t.Errorf("splitTokens(%q) lost text: %q", input, joined)
		}
	}
}
