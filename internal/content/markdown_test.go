package content

import (
	"strings"
	"testing"
)

func TestFromMarkdown(t *testing.T) {
	src := []byte("## Notes\n\nSome **bold** text.\n\n- first\n- second\n")
	root := FromMarkdown(src)
	if root == nil || root.Type != TypeDoc {
		t.Fatalf("root = %+v", root)
	}
	if len(root.Content) != 3 {
		t.Fatalf("block count = %d, want 3", len(root.Content))
	}
	heading := root.Content[0]
	if heading.Type != TypeHeading || heading.Attrs == nil || heading.Attrs.Level != 2 {
		t.Errorf("heading = %+v", heading)
	}
	if got := ExtractText(&heading); got != "Notes" {
		t.Errorf("heading text = %q", got)
	}
	para := root.Content[1]
	if para.Type != TypeParagraph {
		t.Errorf("paragraph type = %q", para.Type)
	}
	foundBold := false
	for _, child := range para.Content {
		if child.Text == "bold" && child.HasMark(MarkBold) {
			foundBold = true
		}
	}
	if !foundBold {
		t.Errorf("no bold leaf in %+v", para.Content)
	}
	if root.Content[2].Type != TypeBulletList {
		t.Errorf("list type = %q", root.Content[2].Type)
	}
}

func TestFromMarkdownEmpty(t *testing.T) {
	root := FromMarkdown(nil)
	if root == nil || root.Type != TypeDoc || len(root.Content) != 0 {
		t.Errorf("empty markdown root = %+v", root)
	}
}

func TestToMarkdown(t *testing.T) {
	tree := docWith(
		Node{Type: TypeHeading, Attrs: &Attrs{Level: 1}, Content: []Node{{Type: TypeText, Text: "Title"}}},
		Node{Type: TypeParagraph, Content: []Node{
			{Type: TypeText, Text: "plain "},
			{Type: TypeText, Text: "strong", Marks: []Mark{{Type: MarkBold}}},
		}},
		Node{Type: TypeOrderedList, Content: []Node{
			{Type: TypeListItem, Content: []Node{paragraph("one")}},
			{Type: TypeListItem, Content: []Node{paragraph("two")}},
		}},
	)
	got := ToMarkdown(tree)
	for _, fragment := range []string{"# Title", "plain **strong**", "1. one", "2. two"} {
		if !strings.Contains(got, fragment) {
			t.Errorf("markdown missing %q:\n%s", fragment, got)
		}
	}
}

func TestMarkdownRoundTripText(t *testing.T) {
	src := []byte("# Title\n\nHello world\n")
	root := FromMarkdown(src)
	if got := ExtractText(root); got != "Title\nHello world" {
		t.Errorf("extracted text = %q", got)
	}
}
