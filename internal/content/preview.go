package content

import "strings"

const (
	PreviewHeading    = "heading"
	PreviewParagraph  = "paragraph"
	PreviewImage      = "image"
	PreviewList       = "list"
	PreviewBlockquote = "blockquote"
)

const (
	headingPreviewChars   = 60
	paragraphPreviewChars = 100
)

// PreviewElement is a compact structural summary of a block for thumbnail and
// hover-preview rendering. Unlike plain extraction it preserves element kinds.
type PreviewElement struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Level  int    `json:"level,omitempty"`
	Src    string `json:"src,omitempty"`
	IsBold bool   `json:"is_bold,omitempty"`
}

// ExtractStructuralElements walks a content tree in document order and
// classifies recognized blocks into preview elements. Traversal stops as soon
// as maxElements have been collected; lists and blockquotes emit a bare
// marker and their inner paragraphs follow as elements of their own.
// Malformed input yields an empty slice.
func ExtractStructuralElements(v interface{}, maxElements int) []PreviewElement {
	elements := make([]PreviewElement, 0, maxElements)
	node := Decode(v)
	if node == nil || maxElements <= 0 {
		return elements
	}
	collectElements(node, maxElements, &elements)
	return elements
}

func collectElements(n *Node, max int, elements *[]PreviewElement) {
	if len(*elements) >= max {
		return
	}

	switch {
	case n.Type == TypeHeading && len(n.Content) > 0:
		if text := inlineText(n); strings.TrimSpace(text) != "" {
			level := 1
			if n.Attrs != nil && n.Attrs.Level > 0 {
				level = n.Attrs.Level
			}
			*elements = append(*elements, PreviewElement{
				Type:  PreviewHeading,
				Text:  sliceRunes(text, headingPreviewChars),
				Level: level,
			})
		}
	case n.Type == TypeParagraph && len(n.Content) > 0:
		if text := inlineText(n); strings.TrimSpace(text) != "" {
			*elements = append(*elements, PreviewElement{
				Type:   PreviewParagraph,
				Text:   sliceRunes(text, paragraphPreviewChars),
				IsBold: hasBoldRun(n),
			})
		}
	case n.Type == TypeImage && n.Attrs != nil && n.Attrs.Src != "":
		*elements = append(*elements, PreviewElement{Type: PreviewImage, Src: n.Attrs.Src})
	case n.Type == TypeBulletList || n.Type == TypeOrderedList:
		// marker first, the item paragraphs still surface below
		*elements = append(*elements, PreviewElement{Type: PreviewList})
	case n.Type == TypeBlockquote:
		*elements = append(*elements, PreviewElement{Type: PreviewBlockquote})
	}

	for i := range n.Content {
		if len(*elements) >= max {
			break
		}
		collectElements(&n.Content[i], max, elements)
	}
}

// inlineText joins the direct children's text without recursing further,
// matching how previews flatten a single block.
func inlineText(n *Node) string {
	var b strings.Builder
	for i := range n.Content {
		b.WriteString(n.Content[i].Text)
	}
	return b.String()
}

func hasBoldRun(n *Node) bool {
	for i := range n.Content {
		if n.Content[i].HasMark(MarkBold) {
			return true
		}
	}
	return false
}
