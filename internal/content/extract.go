package content

import "strings"

// Block-level node types terminated by a newline during text extraction.
var blockTypes = map[string]struct{}{
	TypeParagraph:  {},
	TypeHeading:    {},
	TypeBlockquote: {},
	TypeListItem:   {},
}

// ExtractText linearizes a content tree to plain text. Traversal is
// depth-first pre-order: leaf text is appended verbatim, and a single newline
// is appended after the children of each block-level node so block boundaries
// survive without doubling whitespace inside inline runs. Nil or malformed
// input yields "". The result is deterministic for a given tree.
func ExtractText(v interface{}) string {
	node := Decode(v)
	if node == nil {
		return ""
	}
	var parts []string
	appendText(node, &parts)
	return strings.TrimSpace(strings.Join(parts, ""))
}

func appendText(n *Node, parts *[]string) {
	if n.Text != "" {
		*parts = append(*parts, n.Text)
	}
	if len(n.Content) == 0 {
		return
	}
	for i := range n.Content {
		appendText(&n.Content[i], parts)
	}
	if _, ok := blockTypes[n.Type]; ok {
		*parts = append(*parts, "\n")
	}
}

// Truncate limits s to max runes, appending an ellipsis when text was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func sliceRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
