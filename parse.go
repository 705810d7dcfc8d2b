package bertlv

import (
	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

// Parse builds a TLV tree from the encoding at the start of buf. Trailing
// bytes after the first complete TLV are ignored.
func Parse(buf []byte) (*TLV, error) {
	return ParseAt(buf, 0, len(buf))
}

// ParseAt builds a TLV tree from the encoding starting at off, reading at
// most n bytes. A declared length that does not fit in the n-byte window
// fails with ErrIllegalSize; structural defects fail with ErrMalformedTLV
// or the more specific tag and length reasons.
func ParseAt(buf []byte, off, n int) (*TLV, error) {
	node, _, err := parseOne(buf, off, n)
	return node, err
}

// parseOne recognizes one TLV at off and returns the node together with the
// number of wire bytes it consumed. The consumed count is taken from the
// declared length, so it stays accurate even when end-of-contents octets
// inside a constructed body are dropped from the tree.
func parseOne(buf []byte, off, n int) (*TLV, int, error) {
	if err := checkBuf(buf, off, n); err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, merry.Here(ErrMalformedTLV).Append("empty input")
	}
	window := buf[off : off+n]

	tagLen, err := TagSize(window, 0)
	if err != nil {
		return nil, 0, truncated(err)
	}
	if _, err := TagNumber(window, 0); err != nil {
		return nil, 0, truncated(err)
	}
	constructed := window[0]&maskConstructed == maskConstructed

	dataLen, err := DecodeLength(window, tagLen)
	if err != nil {
		return nil, 0, truncated(err)
	}
	lenLen, err := LengthLengthAt(window, tagLen)
	if err != nil {
		return nil, 0, truncated(err)
	}
	if tagLen+lenLen+dataLen > n {
		return nil, 0, merry.Here(ErrIllegalSize).Appendf("declared length %d exceeds %d available bytes", dataLen, n-tagLen-lenLen)
	}

	tag := make(Tag, tagLen)
	copy(tag, window[:tagLen])

	if constructed {
		node, err := NewConstructed(0)
		if err != nil {
			return nil, 0, err
		}
		node.tag = tag
		if dataLen > 0 {
			if _, err := node.children.Init(window, tagLen+lenLen, dataLen); err != nil {
				return nil, 0, err
			}
		}
		return node, tagLen + lenLen + dataLen, nil
	}

	node, err := NewPrimitive(dataLen)
	if err != nil {
		return nil, 0, err
	}
	node.tag = tag
	node.value = node.value[:dataLen]
	berutil.Copy(node.value, 0, window, tagLen+lenLen, dataLen)
	return node, tagLen + lenLen + dataLen, nil
}

// truncated converts a bounds failure while scanning TLV data into
// ErrMalformedTLV: running off the end of the declared window is a data
// defect, not a caller error. Other reasons pass through unchanged.
func truncated(err error) error {
	if merry.Is(err, ErrIndexOutOfBounds) {
		return merry.Here(ErrMalformedTLV).Append("truncated").WithCause(err)
	}
	return err
}

// VerifyFormat reports whether the n bytes at off hold one well-formed
// BER TLV.
func VerifyFormat(buf []byte, off, n int) bool {
	_, _, err := parseOne(buf, off, n)
	return err == nil
}
