package content

import (
	"unicode"
	"unicode/utf8"
)

type SegmentType string

const (
	SegmentUnchanged SegmentType = "unchanged"
	SegmentAdded     SegmentType = "added"
	SegmentRemoved   SegmentType = "removed"
)

// Segment is a labeled run of text from comparing two extractions. A segment
// sequence partitions both inputs: unchanged+removed concatenates back to the
// old text, unchanged+added back to the new one.
type Segment struct {
	Type SegmentType `json:"type"`
	Text string      `json:"text"`
}

// DiffTexts computes a word-level edit script between two plain texts.
// Tokenization keeps whitespace runs as tokens of their own so the original
// spacing survives reconstruction. The token sequences are aligned with a
// dynamic-programming LCS table; on ties during backtracking surplus new-side
// tokens win, so ambiguous regions read as additions rather than removals.
// Adjacent segments of the same type are coalesced.
func DiffTexts(oldText, newText string) []Segment {
	oldTokens := splitTokens(oldText)
	newTokens := splitTokens(newText)
	m, n := len(oldTokens), len(newTokens)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldTokens[i-1] == newTokens[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	reversed := make([]Segment, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldTokens[i-1] == newTokens[j-1]:
			reversed = append(reversed, Segment{Type: SegmentUnchanged, Text: oldTokens[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			reversed = append(reversed, Segment{Type: SegmentAdded, Text: newTokens[j-1]})
			j--
		default:
			reversed = append(reversed, Segment{Type: SegmentRemoved, Text: oldTokens[i-1]})
			i--
		}
	}

	segments := make([]Segment, 0, len(reversed))
	for k := len(reversed) - 1; k >= 0; k-- {
		segment := reversed[k]
		if last := len(segments) - 1; last >= 0 && segments[last].Type == segment.Type {
			segments[last].Text += segment.Text
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// splitTokens splits text into alternating word and whitespace runs, dropping
// nothing: joining the tokens reproduces the input byte for byte. Slicing by
// byte offset keeps even invalid UTF-8 sequences intact.
func splitTokens(text string) []string {
	if text == "" {
		return nil
	}
	tokens := make([]string, 0, len(text)/4)
	first, _ := utf8.DecodeRuneInString(text)
	start := 0
	inSpace := unicode.IsSpace(first)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) != inSpace {
			tokens = append(tokens, text[start:i])
			start = i
			inSpace = !inSpace
		}
		i += size
	}
	return append(tokens, text[start:])
}
