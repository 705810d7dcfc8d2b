package bertlv

import (
	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

// MaxLength is the largest value length representable by a TLV node. The
// length encoder can emit larger values (up to 24 bits) for raw buffer
// work, but node size queries reject anything above this.
const MaxLength = 32767

// DecodeLength reads a definite-form length starting at off. Lengths that
// would exceed MaxLength, and length prefixes wider than 0x82, fail with
// ErrTLVLengthGreaterThan32767.
func DecodeLength(buf []byte, off int) (int, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return 0, err
	}
	first := buf[off]
	switch {
	case first&0x80 == 0:
		return int(first & 0x7F), nil
	case first == 0x81:
		if err := checkBuf(buf, off+1, 1); err != nil {
			return 0, err
		}
		return int(buf[off+1]), nil
	case first == 0x82:
		if err := checkBuf(buf, off+1, 2); err != nil {
			return 0, err
		}
		v := berutil.GetUint16(buf, off+1)
		if v&0x8000 != 0 {
			return 0, merry.Here(ErrTLVLengthGreaterThan32767).Appendf("length %d", v)
		}
		return int(v), nil
	default:
		return 0, merry.Here(ErrTLVLengthGreaterThan32767)
	}
}

// EncodeLength writes the definite-form length octets for length into out
// at off and returns the number of octets written. Values below 128 use the
// short form; wider values use the 0x81, 0x82 or 0x83 prefixes.
func EncodeLength(length int, out []byte, off int) (int, error) {
	if length < 0 {
		return 0, merry.Here(ErrInvalidParam).Appendf("negative length %d", length)
	}
	n := LengthLength(length)
	if err := checkBuf(out, off, n); err != nil {
		return 0, err
	}
	switch n {
	case 1:
		out[off] = byte(length)
	case 2:
		out[off] = 0x81
		out[off+1] = byte(length)
	case 3:
		out[off] = 0x82
		berutil.PutUint16(out, off+1, uint16(length))
	default:
		out[off] = 0x83
		out[off+1] = byte(length >> 16)
		berutil.PutUint16(out, off+2, uint16(length))
	}
	return n, nil
}

// LengthLength returns the number of octets needed to encode length in
// definite form: 1, 2, 3 or 4.
func LengthLength(length int) int {
	switch {
	case length < 128:
		return 1
	case length < 256:
		return 2
	case length < 65536:
		return 3
	default:
		return 4
	}
}

// LengthLengthAt returns the width of the length field starting at off
// without decoding its value.
func LengthLengthAt(buf []byte, off int) (int, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return 0, err
	}
	if buf[off]&0x80 == 0 {
		return 1, nil
	}
	return 1 + int(buf[off]&0x7F), nil
}
