package content

import "encoding/json"

// Node types recognized by the traversal code. Unrecognized types are kept in
// the tree but treated as opaque containers.
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeBlockquote  = "blockquote"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeListItem    = "listItem"
	TypeImage       = "image"
	TypeCodeBlock   = "codeBlock"
	TypeText        = "text"
)

const MarkBold = "bold"

type Mark struct {
	Type string `json:"type"`
}

type Attrs struct {
	Level int    `json:"level,omitempty"`
	Src   string `json:"src,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// Node is a rich-text document node. A node carries either leaf text or an
// ordered list of children; both fields are optional and traversal tolerates
// any shape.
type Node struct {
	Type    string `json:"type,omitempty"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
	Attrs   *Attrs `json:"attrs,omitempty"`
	Marks   []Mark `json:"marks,omitempty"`
}

func (n *Node) HasMark(markType string) bool {
	if n == nil {
		return false
	}
	for _, m := range n.Marks {
		if m.Type == markType {
			return true
		}
	}
	return false
}

// Decode accepts the shapes a content tree crosses the wire in: an already
// parsed *Node, raw JSON as string or []byte, or a generic decoded value
// (map[string]interface{} and friends). It returns nil for empty or malformed
// input; it never fails loudly since previews and diffs are rendering aids.
func Decode(v interface{}) *Node {
	switch value := v.(type) {
	case nil:
		return nil
	case *Node:
		return value
	case Node:
		return &value
	case string:
		if value == "" {
			return nil
		}
		return decodeJSON([]byte(value))
	case []byte:
		if len(value) == 0 {
			return nil
		}
		return decodeJSON(value)
	case json.RawMessage:
		return Decode([]byte(value))
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil
		}
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) *Node {
	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil
	}
	return &node
}

// Encode serializes a node tree for storage. The zero tree encodes to "".
func Encode(n *Node) string {
	if n == nil {
		return ""
	}
	data, err := json.Marshal(n)
	if err != nil {
		return ""
	}
	return string(data)
}
