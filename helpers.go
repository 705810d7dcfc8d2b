package bertlv

import (
	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

// Packed tags squeeze a 1- or 2-octet tag into a uint16, high byte first: a
// single-octet tag sits in the low byte with the high byte zero. Template
// maps and the convenience builders below are keyed this way; tags longer
// than two octets have no packed form.

// PackedTag returns the packed form of a tag. Tags of raw size 3 or 4 fail
// with ErrIllegalSize.
func PackedTag(t Tag) (uint16, error) {
	switch len(t) {
	case 0:
		return 0, merry.Here(ErrEmptyTag)
	case 1:
		return uint16(t[0]), nil
	case 2:
		return berutil.GetUint16(t, 0), nil
	default:
		return 0, merry.Here(ErrIllegalSize).Appendf("tag %s has no packed form", t)
	}
}

// MakeTag writes the identifier octets for a packed tag into out at off and
// returns the number of octets written.
func MakeTag(packed uint16, out []byte, off int) (int, error) {
	if out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if packed&0xFF00 != 0 {
		if err := checkBuf(out, off, 2); err != nil {
			return 0, err
		}
		berutil.PutUint16(out, off, packed)
		return 2, nil
	}
	if err := checkBuf(out, off, 1); err != nil {
		return 0, err
	}
	out[off] = byte(packed)
	return 1, nil
}

// MakeTagValue returns the Tag for a packed tag.
func MakeTagValue(packed uint16) (Tag, error) {
	var b [2]byte
	n, err := MakeTag(packed, b[:], 0)
	if err != nil {
		return nil, err
	}
	return TagAt(b[:n], 0)
}

// MakeTLV composes a TLV from a packed tag and value bytes into out at off,
// returning the number of bytes written. A constructed tag has the value
// parsed as a sequence of children; a primitive tag adopts it verbatim.
func MakeTLV(packed uint16, value []byte, out []byte, off int) (int, error) {
	if out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	node, err := makeNode(packed, value)
	if err != nil {
		return 0, err
	}
	return node.Bytes(out, off)
}

// MakeTLVBytes is MakeTLV into a fresh, exactly sized buffer.
func MakeTLVBytes(packed uint16, value []byte) ([]byte, error) {
	node, err := makeNode(packed, value)
	if err != nil {
		return nil, err
	}
	return node.Encoded()
}

func makeNode(packed uint16, value []byte) (*TLV, error) {
	tag, err := MakeTagValue(packed)
	if err != nil {
		return nil, err
	}
	constructed, err := tag.Constructed()
	if err != nil {
		return nil, err
	}

	var node *TLV
	if constructed {
		node, err = NewConstructed(0)
	} else {
		node, err = NewPrimitive(len(value))
	}
	if err != nil {
		return nil, err
	}
	if _, err := node.InitValue(tag, value, 0, len(value)); err != nil {
		return nil, err
	}
	return node, nil
}

// ConcatTLV returns a fresh buffer holding the concatenation of two TLV
// encodings.
func ConcatTLV(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
