package bertlv

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Description renders the node for human inspection. level controls the
// indentation: entries at level 1 are introduced with "+-- ", deeper levels
// add four spaces each. The exact text is informational and not part of any
// contract.
func (t *TLV) Description(level int) string {
	var sb strings.Builder
	sb.WriteString(drawLevel(level))
	if len(t.tag) == 0 {
		sb.WriteString("Invalid TLV\n")
		return sb.String()
	}
	if t.kind == kindConstructed {
		fmt.Fprintf(&sb, "T=%s, L=%d (SubItems=%d)\n", tagLabel(t.tag), t.children.DataLength(), t.children.Len())
		sb.WriteString(t.children.Description(level + 1))
		return sb.String()
	}
	fmt.Fprintf(&sb, "T=%s, L=%d, V=%s\n", tagLabel(t.tag), len(t.value), strings.ToUpper(hex.EncodeToString(t.value)))
	return sb.String()
}

// Description renders each contained node at the given level.
func (l *List) Description(level int) string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(item.Description(level))
	}
	return sb.String()
}

func (t *TLV) String() string {
	return t.Description(0)
}

func (l *List) String() string {
	return fmt.Sprintf("Sequential TLV (Items = %d)\n%s", l.Len(), l.Description(0))
}

// Print writes the description of t to w.
func Print(w io.Writer, t *TLV) error {
	_, err := io.WriteString(w, t.Description(0))
	return err
}

func drawLevel(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("    ", level-1) + "+-- "
}

func tagLabel(t Tag) string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString(" [")
	if c, err := t.Constructed(); err == nil && c {
		sb.WriteString("Constructed,")
	} else {
		sb.WriteString("Primitive,")
	}
	class, _ := t.Class()
	switch class {
	case ClassApplication:
		sb.WriteString("Application")
	case ClassContext:
		sb.WriteString("Context")
	case ClassPrivate:
		sb.WriteString("Private")
	default:
		sb.WriteString("Universal")
	}
	sb.WriteString("]")
	if name, ok := TagName(t); ok {
		sb.WriteString(" ")
		sb.WriteString(name)
	}
	return sb.String()
}
