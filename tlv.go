package bertlv

import (
	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

type kind uint8

const (
	kindPrimitive kind = iota
	kindConstructed
)

// TLV is a node in a BER TLV tree: either a primitive holding opaque value
// bytes, or a constructed holding an ordered list of child nodes. The
// variant is fixed at construction and must agree with the constructed bit
// of the tag the node is initialized with.
//
// A freshly constructed node has no tag; observers fail with ErrEmptyTLV
// until one of the Init methods has run. A node owns its tag, its value
// buffer and its children exclusively: inserting the same node under two
// parents is not supported.
type TLV struct {
	kind     kind
	tag      Tag
	value    []byte // primitive value, len is current size, cap is capacity
	children *List  // constructed children
	noExpand bool
}

// NewPrimitive creates an empty primitive node with room for capacity value
// bytes.
func NewPrimitive(capacity int) (*TLV, error) {
	if capacity < 0 {
		return nil, merry.Here(ErrInvalidParam).Appendf("negative capacity %d", capacity)
	}
	return &TLV{kind: kindPrimitive, value: make([]byte, 0, capacity)}, nil
}

// NewConstructed creates an empty constructed node with room for capacity
// children.
func NewConstructed(capacity int) (*TLV, error) {
	l, err := NewList(capacity)
	if err != nil {
		return nil, err
	}
	return &TLV{kind: kindConstructed, children: l}, nil
}

// DisableAutoExpand pins the node's current capacity. Mutations that would
// need more room fail with ErrInsufficientStorage instead of reallocating.
func (t *TLV) DisableAutoExpand() {
	t.noExpand = true
	if t.children != nil {
		t.children.DisableAutoExpand()
	}
}

// Constructed reports whether this node is the constructed variant.
func (t *TLV) Constructed() bool {
	return t.kind == kindConstructed
}

// Init re-initializes the node from the TLV encoding starting at off, n
// bytes at most. The encoded variant must match the node's variant, or Init
// fails with ErrMalformedTLV. Returns the resulting encoded size.
func (t *TLV) Init(buf []byte, off, n int) (int, error) {
	node, _, err := parseOne(buf, off, n)
	if err != nil {
		return 0, err
	}
	if node.kind != t.kind {
		return 0, merry.Here(ErrMalformedTLV).Append("variant mismatch")
	}
	t.tag = node.tag
	t.value = node.value
	t.children = node.children
	return t.Size()
}

// InitValue re-initializes the node with the given tag and n value bytes
// from v at off. For a constructed node the bytes are parsed as a sequence
// of children. v may be nil when n is zero. Returns the resulting encoded
// size.
func (t *TLV) InitValue(tag Tag, v []byte, off, n int) (int, error) {
	if tag == nil {
		return 0, merry.Here(ErrNilInput).Append("nil tag")
	}
	constructed, err := tag.Constructed()
	if err != nil {
		return 0, err
	}
	if constructed != (t.kind == kindConstructed) {
		return 0, merry.Here(ErrMalformedTLV).Append("tag variant mismatch")
	}
	if v == nil && n != 0 {
		return 0, merry.Here(ErrNilInput)
	}
	if v != nil {
		if err := checkBuf(v, off, n); err != nil {
			return 0, err
		}
	}

	t.tag = tag
	if t.kind == kindConstructed {
		t.children.clear()
		if n > 0 {
			if _, err := t.children.Init(v, off, n); err != nil {
				return 0, err
			}
		}
		return t.Size()
	}

	t.value = t.value[:0]
	if n > 0 {
		if err := t.grow(n); err != nil {
			return 0, err
		}
		t.value = t.value[:n]
		berutil.Copy(t.value, 0, v, off, n)
	}
	return t.Size()
}

// InitChild re-initializes a constructed node with the given tag and a
// single child. Returns the resulting encoded size.
func (t *TLV) InitChild(tag Tag, child *TLV) (int, error) {
	if tag == nil || child == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if t.kind != kindConstructed {
		return 0, merry.Here(ErrInvalidParam).Append("not a constructed TLV")
	}
	constructed, err := tag.Constructed()
	if err != nil {
		return 0, err
	}
	if !constructed {
		return 0, merry.Here(ErrMalformedTLV).Append("tag variant mismatch")
	}
	t.tag = tag
	t.children.clear()
	return t.Append(child)
}

// Tag returns the node's tag.
func (t *TLV) Tag() (Tag, error) {
	if len(t.tag) == 0 {
		return nil, merry.Here(ErrEmptyTLV)
	}
	return t.tag, nil
}

// Length returns the byte count of the value field. For a constructed node
// this is the sum of the children's encoded sizes.
func (t *TLV) Length() (int, error) {
	if len(t.tag) == 0 {
		return 0, merry.Here(ErrEmptyTLV)
	}
	var dataLen int
	if t.kind == kindConstructed {
		dataLen = t.children.DataLength()
	} else {
		dataLen = len(t.value)
	}
	if dataLen > MaxLength {
		return 0, merry.Here(ErrTLVLengthGreaterThan32767).Appendf("length %d", dataLen)
	}
	return dataLen, nil
}

// Size returns the number of bytes the node occupies when encoded: tag
// octets, length octets and value.
func (t *TLV) Size() (int, error) {
	dataLen, err := t.Length()
	if err != nil {
		return 0, err
	}
	tagLen, err := t.tag.Size()
	if err != nil {
		return 0, err
	}
	size := tagLen + LengthLength(dataLen) + dataLen
	if size > MaxLength {
		return 0, merry.Here(ErrTLVSizeGreaterThan32767).Appendf("size %d", size)
	}
	return size, nil
}

// Bytes serializes the node into out at off and returns the number of bytes
// written.
func (t *TLV) Bytes(out []byte, off int) (int, error) {
	if out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	size, err := t.Size()
	if err != nil {
		return 0, err
	}
	if err := checkBuf(out, off, size); err != nil {
		return 0, err
	}

	o := off
	n, err := t.tag.Bytes(out, o)
	if err != nil {
		return 0, err
	}
	o += n

	dataLen, err := t.Length()
	if err != nil {
		return 0, err
	}
	n, err = EncodeLength(dataLen, out, o)
	if err != nil {
		return 0, err
	}
	o += n

	if t.kind == kindConstructed {
		n, err = t.children.WriteData(out, o)
		if err != nil {
			return 0, err
		}
		o += n
	} else {
		o = berutil.Copy(out, o, t.value, 0, len(t.value))
	}
	return o - off, nil
}

// Encoded serializes the node into a fresh buffer.
func (t *TLV) Encoded() ([]byte, error) {
	size, err := t.Size()
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	if _, err := t.Bytes(out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// grow makes room for a value of need bytes, reallocating when automatic
// expansion is enabled.
func (t *TLV) grow(need int) error {
	if need <= cap(t.value) {
		return nil
	}
	if t.noExpand {
		return merry.Here(ErrInsufficientStorage).Appendf("capacity %d need %d", cap(t.value), need)
	}
	nv := make([]byte, len(t.value), need)
	copy(nv, t.value)
	t.value = nv
	return nil
}

// AppendValue appends n bytes from v at off to the value of a primitive
// node. Returns the resulting encoded size.
func (t *TLV) AppendValue(v []byte, off, n int) (int, error) {
	if t.kind != kindPrimitive {
		return 0, merry.Here(ErrInvalidParam).Append("not a primitive TLV")
	}
	if len(t.tag) == 0 {
		return 0, merry.Here(ErrEmptyTLV)
	}
	if err := checkBuf(v, off, n); err != nil {
		return 0, err
	}
	if err := t.grow(len(t.value) + n); err != nil {
		return 0, err
	}
	old := len(t.value)
	t.value = t.value[:old+n]
	berutil.Copy(t.value, old, v, off, n)
	return t.Size()
}

// ReplaceValue replaces the value of a primitive node with n bytes from v
// at off. v may be nil when n is zero. Returns the resulting encoded size.
func (t *TLV) ReplaceValue(v []byte, off, n int) (int, error) {
	if t.kind != kindPrimitive {
		return 0, merry.Here(ErrInvalidParam).Append("not a primitive TLV")
	}
	if len(t.tag) == 0 {
		return 0, merry.Here(ErrEmptyTLV)
	}
	if v == nil && n != 0 {
		return 0, merry.Here(ErrNilInput)
	}
	if v != nil {
		if err := checkBuf(v, off, n); err != nil {
			return 0, err
		}
	}
	if err := t.grow(n); err != nil {
		return 0, err
	}
	t.value = t.value[:n]
	if n > 0 {
		berutil.Copy(t.value, 0, v, off, n)
	}
	return t.Size()
}

// Value copies the value of a primitive node into out at off and returns
// the number of bytes copied.
func (t *TLV) Value(out []byte, off int) (int, error) {
	if t.kind != kindPrimitive {
		return 0, merry.Here(ErrInvalidParam).Append("not a primitive TLV")
	}
	if len(t.tag) == 0 {
		return 0, merry.Here(ErrEmptyTLV)
	}
	if err := checkBuf(out, off, len(t.value)); err != nil {
		return 0, err
	}
	berutil.Copy(out, off, t.value, 0, len(t.value))
	return len(t.value), nil
}

// Append appends a child to a constructed node. Appending the node to
// itself, or to a node contained in the child's own subtree, fails with
// ErrInvalidParam. Returns the resulting encoded size.
func (t *TLV) Append(child *TLV) (int, error) {
	if t.kind != kindConstructed {
		return 0, merry.Here(ErrInvalidParam).Append("not a constructed TLV")
	}
	if child == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if child == t || containsNode(child, t) {
		return 0, merry.Here(ErrInvalidParam).Append("cycle")
	}
	if _, err := t.children.Append(child); err != nil {
		return 0, err
	}
	return t.Size()
}

// Delete removes the occurrence-th child whose tag equals the given child's
// tag (1-based). Returns the resulting encoded size.
func (t *TLV) Delete(child *TLV, occurrence int) (int, error) {
	if t.kind != kindConstructed {
		return 0, merry.Here(ErrInvalidParam).Append("not a constructed TLV")
	}
	if _, err := t.children.Delete(child, occurrence); err != nil {
		return 0, err
	}
	return t.Size()
}

// Find returns the first child whose tag equals tag, or the first child
// when tag is nil. It returns nil when there is no match or the node is not
// constructed.
func (t *TLV) Find(tag Tag) *TLV {
	if t.kind != kindConstructed {
		return nil
	}
	return t.children.Find(tag)
}

// FindNext returns the occurrence-th child matching tag after the given
// child, or nil when the remaining children hold no match. A nil tag
// matches every child.
func (t *TLV) FindNext(tag Tag, after *TLV, occurrence int) (*TLV, error) {
	if t.kind != kindConstructed {
		return nil, merry.Here(ErrInvalidParam).Append("not a constructed TLV")
	}
	return t.children.FindNext(tag, after, occurrence)
}

// containsNode reports whether needle is root or a node somewhere in root's
// subtree.
func containsNode(root, needle *TLV) bool {
	if root == needle {
		return true
	}
	if root.kind != kindConstructed || root.children == nil {
		return false
	}
	for _, c := range root.children.items {
		if containsNode(c, needle) {
			return true
		}
	}
	return false
}
