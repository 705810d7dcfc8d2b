package bertlv

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/ansel1/merry"
)

// BER tag classes, from the top two bits of the first identifier octet.
const (
	ClassUniversal   = 0
	ClassApplication = 1
	ClassContext     = 2
	ClassPrivate     = 3
)

const (
	maskClass       = 0xC0
	maskConstructed = 0x20
	maskTagNumber   = 0x1F
	maskMoreOctets  = 0x80

	// end-of-contents octet, tolerated between children on read
	eocOctet = 0x00

	maxTagSize = 4
)

// MaxTagNumber is the largest tag number this package decodes. Encoding
// rejects numbers at or above it.
const MaxTagNumber = 32767

// Tag is the identifier octets of a BER TLV, exactly as they appear on the
// wire (1 to 4 bytes). The zero value is the empty tag; observers on an
// empty tag fail with ErrEmptyTag.
type Tag []byte

// TagSize returns the byte length of the tag starting at off. Tags longer
// than four octets fail with ErrIllegalSize.
func TagSize(buf []byte, off int) (int, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return 0, err
	}
	if buf[off]&maskTagNumber != maskTagNumber {
		return 1, nil
	}
	n := 1
	for {
		if n >= maxTagSize {
			return 0, merry.Here(ErrIllegalSize).Append("tag longer than 4 octets")
		}
		if err := checkBuf(buf, off+n, 1); err != nil {
			return 0, err
		}
		more := buf[off+n]&maskMoreOctets != 0
		n++
		if !more {
			return n, nil
		}
	}
}

// TagNumber returns the tag number of the tag starting at off. Long-form
// numbers may span up to three continuation octets; anything larger fails
// with ErrTagNumberGreaterThan32767.
func TagNumber(buf []byte, off int) (int, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return 0, err
	}
	if buf[off]&maskTagNumber != maskTagNumber {
		return int(buf[off] & maskTagNumber), nil
	}
	if err := checkBuf(buf, off+1, 1); err != nil {
		return 0, err
	}
	c1 := buf[off+1]
	if c1&maskMoreOctets == 0 {
		return int(c1 & 0x7F), nil
	}
	if err := checkBuf(buf, off+2, 1); err != nil {
		return 0, err
	}
	c2 := buf[off+2]
	if c2&maskMoreOctets == 0 {
		return int(c1&0x7F)<<7 | int(c2&0x7F), nil
	}
	if err := checkBuf(buf, off+3, 1); err != nil {
		return 0, err
	}
	c3 := buf[off+3]
	if c3&maskMoreOctets != 0 {
		// a fourth continuation octet would be required
		return 0, merry.Here(ErrTagNumberGreaterThan32767)
	}
	if c1&0x7E != 0 {
		return 0, merry.Here(ErrTagNumberGreaterThan32767)
	}
	return int(c1&0x01)<<14 | int(c2&0x7F)<<7 | int(c3&0x7F), nil
}

// TagClass returns the class bits of the tag starting at off.
func TagClass(buf []byte, off int) (int, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return 0, err
	}
	return int(buf[off]&maskClass) >> 6, nil
}

// IsConstructed reports whether the tag starting at off has the constructed
// bit set.
func IsConstructed(buf []byte, off int) (bool, error) {
	if err := checkBuf(buf, off, 1); err != nil {
		return false, err
	}
	return buf[off]&maskConstructed == maskConstructed, nil
}

// TagToBytes writes the identifier octets for the given class, constructed
// flag and tag number into out at off, returning the number of octets
// written. Numbers below 31 use the short form; larger numbers emit
// big-endian 7-bit continuation octets. Numbers at or above MaxTagNumber
// fail with ErrIllegalSize; a bad class or negative number fails with
// ErrInvalidParam.
func TagToBytes(class int, constructed bool, number int, out []byte, off int) (int, error) {
	if out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if class < ClassUniversal || class > ClassPrivate || number < 0 {
		return 0, merry.Here(ErrInvalidParam).Appendf("class %d number %d", class, number)
	}
	if number >= MaxTagNumber {
		return 0, merry.Here(ErrIllegalSize).Appendf("tag number %d", number)
	}

	first := byte(class)<<6 | byte(number&maskTagNumber)
	if constructed {
		first = byte(class)<<6 | maskConstructed | byte(number&maskTagNumber)
	}

	if number < 31 {
		if err := checkBuf(out, off, 1); err != nil {
			return 0, err
		}
		out[off] = first
		return 1, nil
	}

	var scratch [maxTagSize]byte
	n := 0
	for v := number; ; {
		scratch[n] = byte(v&0x7F) | maskMoreOctets
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}

	if err := checkBuf(out, off, 1+n); err != nil {
		return 0, err
	}
	out[off] = first | maskTagNumber
	for i := 0; i < n; i++ {
		out[off+1+i] = scratch[n-1-i]
	}
	out[off+n] &^= maskMoreOctets
	return 1 + n, nil
}

// VerifyTagFormat reports whether buf holds a well-formed tag of supported
// size at off.
func VerifyTagFormat(buf []byte, off int) bool {
	n, err := TagSize(buf, off)
	return err == nil && n >= 1
}

// TagAt parses the tag starting at off and returns a copy of its raw
// octets. The tag number is validated against MaxTagNumber.
func TagAt(buf []byte, off int) (Tag, error) {
	n, err := TagSize(buf, off)
	if err != nil {
		return nil, err
	}
	if _, err := TagNumber(buf, off); err != nil {
		return nil, err
	}
	t := make(Tag, n)
	copy(t, buf[off:off+n])
	return t, nil
}

// NewTag builds a tag from its class, constructed flag and number.
func NewTag(class int, constructed bool, number int) (Tag, error) {
	var b [maxTagSize]byte
	n, err := TagToBytes(class, constructed, number, b[:], 0)
	if err != nil {
		return nil, err
	}
	t := make(Tag, n)
	copy(t, b[:n])
	return t, nil
}

// Size returns the number of identifier octets.
func (t Tag) Size() (int, error) {
	if len(t) == 0 {
		return 0, merry.Here(ErrEmptyTag)
	}
	if len(t) > 127 {
		return 0, merry.Here(ErrTagSizeGreaterThan127)
	}
	return len(t), nil
}

// Number returns the tag number.
func (t Tag) Number() (int, error) {
	if len(t) == 0 {
		return 0, merry.Here(ErrEmptyTag)
	}
	return TagNumber(t, 0)
}

// Class returns the tag class bits.
func (t Tag) Class() (int, error) {
	if len(t) == 0 {
		return 0, merry.Here(ErrEmptyTag)
	}
	return TagClass(t, 0)
}

// Constructed reports whether the constructed bit is set.
func (t Tag) Constructed() (bool, error) {
	if len(t) == 0 {
		return false, merry.Here(ErrEmptyTag)
	}
	return IsConstructed(t, 0)
}

// Bytes writes the identifier octets into out at off and returns the count
// written.
func (t Tag) Bytes(out []byte, off int) (int, error) {
	if out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	if len(t) == 0 {
		return 0, merry.Here(ErrEmptyTag)
	}
	if err := checkBuf(out, off, len(t)); err != nil {
		return 0, err
	}
	copy(out[off:], t)
	return len(t), nil
}

// Equal reports byte equality of the raw identifier octets. An empty tag is
// never equal to anything, including another empty tag.
func (t Tag) Equal(other Tag) bool {
	return len(t) > 0 && bytes.Equal(t, other)
}

// String returns the upper-case hex form of the identifier octets, e.g.
// "9F38".
func (t Tag) String() string {
	return strings.ToUpper(hex.EncodeToString(t))
}

func (t Tag) MarshalText() (text []byte, err error) {
	return []byte(t.String()), nil
}

func (t *Tag) UnmarshalText(text []byte) (err error) {
	*t, err = ParseTagName(string(text))
	return
}
