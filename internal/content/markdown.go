package content

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromMarkdown parses markdown into a content tree. Constructs without a node
// equivalent (raw HTML, thematic breaks) are dropped.
func FromMarkdown(src []byte) *Node {
	if len(src) == 0 {
		return &Node{Type: TypeDoc}
	}
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))
	root := &Node{Type: TypeDoc}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if block := convertBlock(child, src); block != nil {
			root.Content = append(root.Content, *block)
		}
	}
	return root
}

func convertBlock(n ast.Node, src []byte) *Node {
	switch block := n.(type) {
	case *ast.Heading:
		return &Node{
			Type:    TypeHeading,
			Attrs:   &Attrs{Level: block.Level},
			Content: convertInlines(block, src, nil),
		}
	case *ast.Paragraph, *ast.TextBlock:
		return &Node{Type: TypeParagraph, Content: convertInlines(n, src, nil)}
	case *ast.Blockquote:
		return convertContainer(block, src, TypeBlockquote)
	case *ast.List:
		listType := TypeBulletList
		if block.IsOrdered() {
			listType = TypeOrderedList
		}
		return convertContainer(block, src, listType)
	case *ast.ListItem:
		return convertContainer(block, src, TypeListItem)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		value := blockLines(n, src)
		node := &Node{Type: TypeCodeBlock}
		if value != "" {
			node.Content = []Node{{Type: TypeText, Text: value}}
		}
		return node
	default:
		return nil
	}
}

func convertContainer(n ast.Node, src []byte, nodeType string) *Node {
	node := &Node{Type: nodeType}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if block := convertBlock(child, src); block != nil {
			node.Content = append(node.Content, *block)
		}
	}
	return node
}

func convertInlines(parent ast.Node, src []byte, marks []Mark) []Node {
	var nodes []Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch inline := child.(type) {
		case *ast.Text:
			value := string(inline.Segment.Value(src))
			if value != "" {
				nodes = append(nodes, textLeaf(value, marks))
			}
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				nodes = append(nodes, textLeaf("\n", marks))
			}
		case *ast.String:
			if len(inline.Value) > 0 {
				nodes = append(nodes, textLeaf(string(inline.Value), marks))
			}
		case *ast.Emphasis:
			markType := "italic"
			if inline.Level >= 2 {
				markType = MarkBold
			}
			nodes = append(nodes, convertInlines(inline, src, append(marks[:len(marks):len(marks)], Mark{Type: markType}))...)
		case *ast.CodeSpan:
			nodes = append(nodes, convertInlines(inline, src, append(marks[:len(marks):len(marks)], Mark{Type: "code"}))...)
		case *ast.Link:
			nodes = append(nodes, convertInlines(inline, src, append(marks[:len(marks):len(marks)], Mark{Type: "link"}))...)
		case *ast.Image:
			nodes = append(nodes, Node{
				Type:  TypeImage,
				Attrs: &Attrs{Src: string(inline.Destination), Alt: string(inline.Text(src))},
			})
		case *ast.AutoLink:
			nodes = append(nodes, textLeaf(string(inline.URL(src)), marks))
		default:
			nodes = append(nodes, convertInlines(inline, src, marks)...)
		}
	}
	return nodes
}

func textLeaf(value string, marks []Mark) Node {
	node := Node{Type: TypeText, Text: value}
	if len(marks) > 0 {
		node.Marks = append([]Mark(nil), marks...)
	}
	return node
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ToMarkdown renders a content tree back to markdown. It is lossy in the same
// places the markdown import is: unknown node types render as their text.
func ToMarkdown(n *Node) string {
	if n == nil {
		return ""
	}
	var blocks []string
	if n.Type == TypeDoc || n.Type == "" {
		for i := range n.Content {
			if block := renderBlock(&n.Content[i], ""); block != "" {
				blocks = append(blocks, block)
			}
		}
	} else if block := renderBlock(n, ""); block != "" {
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n *Node, indent string) string {
	switch n.Type {
	case TypeHeading:
		level := 1
		if n.Attrs != nil && n.Attrs.Level > 0 {
			level = n.Attrs.Level
		}
		return indent + strings.Repeat("#", level) + " " + renderInline(n)
	case TypeParagraph:
		return indent + renderInline(n)
	case TypeBlockquote:
		var lines []string
		for i := range n.Content {
			lines = append(lines, "> "+renderBlock(&n.Content[i], ""))
		}
		return strings.Join(lines, "\n")
	case TypeBulletList:
		return renderList(n, indent, func(int) string { return "- " })
	case TypeOrderedList:
		return renderList(n, indent, func(i int) string { return fmt.Sprintf("%d. ", i+1) })
	case TypeCodeBlock:
		return indent + "```\n" + renderInline(n) + "\n" + indent + "```"
	case TypeImage:
		if n.Attrs == nil {
			return ""
		}
		return indent + fmt.Sprintf("![%s](%s)", n.Attrs.Alt, n.Attrs.Src)
	default:
		return indent + renderInline(n)
	}
}

func renderList(n *Node, indent string, marker func(int) string) string {
	var lines []string
	for i := range n.Content {
		item := &n.Content[i]
		var itemBlocks []string
		for j := range item.Content {
			itemBlocks = append(itemBlocks, renderBlock(&item.Content[j], ""))
		}
		lines = append(lines, indent+marker(i)+strings.Join(itemBlocks, "\n"+indent+"  "))
	}
	return strings.Join(lines, "\n")
}

func renderInline(n *Node) string {
	var b strings.Builder
	for i := range n.Content {
		child := &n.Content[i]
		switch {
		case child.Type == TypeImage && child.Attrs != nil:
			b.WriteString(fmt.Sprintf("![%s](%s)", child.Attrs.Alt, child.Attrs.Src))
		case child.Text != "":
			b.WriteString(wrapMarks(child))
		default:
			b.WriteString(renderInline(child))
		}
	}
	return b.String()
}

func wrapMarks(n *Node) string {
	value := n.Text
	if n.HasMark("code") {
		value = "`" + value + "`"
	}
	if n.HasMark(MarkBold) {
		value = "**" + value + "**"
	}
	if n.HasMark("italic") {
		value = "*" + value + "*"
	}
	return value
}
