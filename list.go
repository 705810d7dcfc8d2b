package bertlv

import (
	"github.com/ansel1/merry"
)

// List is an ordered, resizable sequence of TLV nodes. It backs the child
// list of every constructed node and also models a top-level byte stream
// holding several concatenated TLVs with no enclosing tag (for example a
// SELECT response listing one application template per entry).
type List struct {
	items    []*TLV
	noExpand bool
}

// NewList creates an empty list with room for capacity nodes.
func NewList(capacity int) (*List, error) {
	if capacity < 0 {
		return nil, merry.Here(ErrInvalidParam).Appendf("negative capacity %d", capacity)
	}
	return &List{items: make([]*TLV, 0, capacity)}, nil
}

// ParseSequence parses buf as a sequence of concatenated TLVs.
func ParseSequence(buf []byte) (*List, error) {
	l, err := NewList(0)
	if err != nil {
		return nil, err
	}
	if _, err := l.Init(buf, 0, len(buf)); err != nil {
		return nil, err
	}
	return l, nil
}

// DisableAutoExpand pins the list's current capacity. Appends beyond it
// fail with ErrInsufficientStorage.
func (l *List) DisableAutoExpand() {
	l.noExpand = true
}

func (l *List) clear() {
	for i := range l.items {
		l.items[i] = nil
	}
	l.items = l.items[:0]
}

// Init re-initializes the list by parsing TLVs from buf at off until n
// bytes are consumed. Lone end-of-contents octets (0x00) between TLVs are
// skipped. Returns the summed encoded size of the parsed nodes.
func (l *List) Init(buf []byte, off, n int) (int, error) {
	if err := checkBuf(buf, off, n); err != nil {
		return 0, err
	}
	l.clear()
	o, rem := off, n
	for rem > 0 {
		if buf[o] == eocOctet {
			o++
			rem--
			continue
		}
		node, consumed, err := parseOne(buf, o, rem)
		if err != nil {
			return 0, err
		}
		if _, err := l.Append(node); err != nil {
			return 0, err
		}
		o += consumed
		rem -= consumed
	}
	return l.DataLength(), nil
}

// Append adds a node at the end of the list and returns the resulting
// summed encoded size.
func (l *List) Append(t *TLV) (int, error) {
	if t == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if len(l.items) == cap(l.items) && l.noExpand {
		return 0, merry.Here(ErrInsufficientStorage).Appendf("capacity %d", cap(l.items))
	}
	l.items = append(l.items, t)
	return l.DataLength(), nil
}

// Delete removes the occurrence-th node (1-based) whose tag equals the
// given node's tag, shifting the following nodes down. It fails with
// ErrInvalidParam when occurrence is not positive or exceeds the number of
// matches. Returns the resulting summed encoded size.
func (l *List) Delete(t *TLV, occurrence int) (int, error) {
	if t == nil {
		return 0, merry.Here(ErrNilInput)
	}
	tag, err := t.Tag()
	if err != nil {
		return 0, err
	}
	if occurrence <= 0 {
		return 0, merry.Here(ErrInvalidParam).Appendf("occurrence %d", occurrence)
	}

	matches, idx := 0, -1
	for i, item := range l.items {
		if item.tag.Equal(tag) {
			matches++
			if matches == occurrence {
				idx = i
			}
		}
	}
	if idx == -1 {
		return 0, merry.Here(ErrInvalidParam).Appendf("occurrence %d of tag %s not found", occurrence, tag)
	}

	copy(l.items[idx:], l.items[idx+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	return l.DataLength(), nil
}

// Find returns the first node whose tag equals tag, or the first node when
// tag is nil. Nil when there is no match.
func (l *List) Find(tag Tag) *TLV {
	for _, item := range l.items {
		if tag == nil || item.tag.Equal(tag) {
			return item
		}
	}
	return nil
}

// FindNext returns the occurrence-th node matching tag positioned after the
// given node. A nil tag matches every node. It fails with ErrInvalidParam
// when after is not an element of the list or occurrence is not positive;
// it returns nil without error when the remaining nodes hold no match.
func (l *List) FindNext(tag Tag, after *TLV, occurrence int) (*TLV, error) {
	if after == nil {
		return nil, merry.Here(ErrNilInput)
	}
	start := -1
	for i, item := range l.items {
		if item == after {
			start = i + 1
			break
		}
	}
	if occurrence <= 0 || start == -1 {
		return nil, merry.Here(ErrInvalidParam).Appendf("occurrence %d start %d", occurrence, start)
	}

	matches := 0
	for _, item := range l.items[start:] {
		if tag == nil || item.tag.Equal(tag) {
			matches++
			if matches == occurrence {
				return item, nil
			}
		}
	}
	return nil, nil
}

// WriteData serializes the nodes in order into out at off and returns the
// number of bytes written.
func (l *List) WriteData(out []byte, off int) (int, error) {
	o := off
	for _, item := range l.items {
		n, err := item.Bytes(out, o)
		if err != nil {
			return 0, err
		}
		o += n
	}
	return o - off, nil
}

// DataLength returns the summed encoded size of the contained nodes. Nodes
// whose own size cannot be computed (empty, or beyond the 32767 limit) are
// excluded from the sum; the limit still surfaces through Length and Size
// on an enclosing node.
func (l *List) DataLength() int {
	dataLen := 0
	for _, item := range l.items {
		n, err := item.Size()
		if err != nil {
			continue
		}
		dataLen += n
	}
	return dataLen
}

// Len returns the number of contained nodes.
func (l *List) Len() int {
	return len(l.items)
}
