package ttree

import (
	"io"
	"strings"
)

// Serializer defaults. Existing consumers of the output depend on these
// exact strings.
const (
	DefaultIndent        = "\t"
	DefaultSectionMarker = "./section"
	DefaultLineEnd       = "\n"
)

// TreeWriter renders nodes as indented text: one line per leaf holding
// its raw text, one marker line per branch before its children, indented
// by one indent unit per nesting depth. It is a read-only consumer of
// the node model.
type TreeWriter struct {
	Indent  string
	Marker  string
	LineEnd string

	w     io.Writer
	depth int
}

// NewTreeWriter creates a writer targeting w with the default format.
func NewTreeWriter(w io.Writer) *TreeWriter {
	return &TreeWriter{
		Indent:  DefaultIndent,
		Marker:  DefaultSectionMarker,
		LineEnd: DefaultLineEnd,
		w:       w,
	}
}

// WriteNode renders n at the writer's current depth.
func (tw *TreeWriter) WriteNode(n Node) error {
	switch v := n.(type) {
	case *Leaf:
		return tw.writeLine(v.Text)
	case *Branch:
		if err := tw.writeLine(tw.Marker); err != nil {
			return err
		}
		tw.depth++
		for _, child := range v.Children {
			if err := tw.WriteNode(child); err != nil {
				tw.depth--
				return err
			}
		}
		tw.depth--
	}
	return nil
}

func (tw *TreeWriter) writeLine(text string) error {
	var sb strings.Builder
	for i := 0; i < tw.depth; i++ {
		sb.WriteString(tw.Indent)
	}
	sb.WriteString(text)
	sb.WriteString(tw.LineEnd)
	_, err := io.WriteString(tw.w, sb.String())
	return err
}
