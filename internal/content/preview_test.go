package content

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractStructuralElements(t *testing.T) {
	tree := docWith(
		Node{Type: TypeHeading, Attrs: &Attrs{Level: 2}, Content: []Node{{Type: TypeText, Text: "Release notes"}}},
		Node{Type: TypeParagraph, Content: []Node{
			{Type: TypeText, Text: "We shipped "},
			{Type: TypeText, Text: "everything", Marks: []Mark{{Type: MarkBold}}},
		}},
		Node{Type: TypeImage, Attrs: &Attrs{Src: "https://cdn.example.com/1.png"}},
		Node{Type: TypeBulletList, Content: []Node{
			{Type: TypeListItem, Content: []Node{paragraph("item one")}},
		}},
		Node{Type: TypeBlockquote, Content: []Node{paragraph("quoted line")}},
	)

	got := ExtractStructuralElements(tree, 8)
	want := []PreviewElement{
		{Type: PreviewHeading, Text: "Release notes", Level: 2},
		{Type: PreviewParagraph, Text: "We shipped everything", IsBold: true},
		{Type: PreviewImage, Src: "https://cdn.example.com/1.png"},
		{Type: PreviewList},
		{Type: PreviewParagraph, Text: "item one"},
		{Type: PreviewBlockquote},
		{Type: PreviewParagraph, Text: "quoted line"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractStructuralElements() = %+v, want %+v", got, want)
	}
}

func TestExtractStructuralElementsBound(t *testing.T) {
	blocks := make([]Node, 0, 10)
	for i := 0; i < 10; i++ {
		blocks = append(blocks, paragraph("block"))
	}
	got := ExtractStructuralElements(docWith(blocks...), 3)
	if len(got) != 3 {
		t.Errorf("element count = %d, want 3", len(got))
	}
}

func TestExtractStructuralElementsTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := ExtractStructuralElements(docWith(paragraph(long)), 8)
	if len(got) != 1 {
		t.Fatalf("element count = %d, want 1", len(got))
	}
	if len(got[0].Text) != 100 {
		t.Errorf("paragraph preview length = %d, want 100", len(got[0].Text))
	}
}

func TestExtractStructuralElementsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content interface{}
	}{
		{"nil", nil},
		{"bad json", "][nope"},
		{"empty tree", &Node{}},
		{"empty heading skipped", docWith(Node{Type: TypeHeading, Content: []Node{{Type: TypeText, Text: "  "}}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractStructuralElements(tt.content, 8); len(got) != 0 {
				t.Errorf("expected no elements, got %+v", got)
			}
		})
	}
}
