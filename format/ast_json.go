package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/reflyze/java/parser"
)

// TreeJSONEncoder writes a syntax tree as nested JSON objects.
type TreeJSONEncoder struct {
	w         io.Writer
	positions bool
}

// NewTreeJSONEncoder returns an encoder for w. With positions set, every
// node carries its start and end as "line:column".
func NewTreeJSONEncoder(w io.Writer, positions bool) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w, positions: positions}
}

func (e *TreeJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalTree(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TreeJSONEncoder) MarshalTree(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(e.convert(node), "", "  ")
}

type treeNode struct {
	Kind     string      `json:"kind"`
	Start    string      `json:"start,omitempty"`
	End      string      `json:"end,omitempty"`
	Token    string      `json:"token,omitempty"`
	Error    *treeError  `json:"error,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

type treeError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (e *TreeJSONEncoder) convert(n *parser.Node) *treeNode {
	if n == nil {
		return nil
	}
	out := &treeNode{Kind: n.Kind.String(), Token: n.TokenLiteral()}

	if e.positions && n.Span.Start.Line != 0 {
		out.Start = n.Span.Start.String()
		out.End = n.Span.End.String()
	}

	if n.Error != nil {
		out.Error = &treeError{Message: n.Error.Message}
		for _, kind := range n.Error.Expected {
			out.Error.Expected = append(out.Error.Expected, kind.String())
		}
		if n.Error.Got != nil {
			out.Error.Got = n.Error.Got.Literal
		}
	}

	for _, child := range n.Children {
		out.Children = append(out.Children, e.convert(child))
	}
	return out
}

// WriteTree writes the indented text form of a syntax tree.
func WriteTree(w io.Writer, node *parser.Node, positions bool) error {
	text := node.String()
	if positions {
		text = node.StringWithPositions()
	}
	_, err := io.WriteString(w, text)
	return err
}
