package bertlv

import (
	"bytes"

	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

// Raw-buffer helpers: these edit and search TLV encodings in place without
// handing a tree back to the caller.

// AppendRaw parses one TLV from in at inOff, appends it to the constructed
// TLV encoded in out at outOff, and re-emits the container in place.
// Returns the container's new encoded size. A primitive container fails
// with ErrMalformedTLV.
func AppendRaw(in []byte, inOff int, out []byte, outOff int) (int, error) {
	if in == nil || out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	child, _, err := parseOne(in, inOff, len(in)-inOff)
	if err != nil {
		return 0, err
	}
	container, _, err := parseOne(out, outOff, len(out)-outOff)
	if err != nil {
		return 0, err
	}
	if !container.Constructed() {
		return 0, merry.Here(ErrMalformedTLV).Append("container is primitive")
	}
	if _, err := container.Append(child); err != nil {
		return 0, err
	}
	return container.Bytes(out, outOff)
}

// FindRaw returns the absolute offset in buf of the first child of the
// constructed TLV at off whose tag equals the tag encoded in tagBuf at
// tagOff, or -1 when there is no match. A nil tagBuf matches the first
// child. End-of-contents octets at child boundaries are skipped.
func FindRaw(buf []byte, off int, tagBuf []byte, tagOff int) (int, error) {
	return findInBody(buf, off, -1, tagBuf, tagOff)
}

// FindNextRaw is FindRaw starting after a known child: childOff must be the
// absolute offset of a child of the constructed TLV at tlvOff (as returned
// by a previous FindRaw), and the search covers the children following it. It
// fails with ErrInvalidParam when childOff is not a child boundary.
func FindNextRaw(buf []byte, tlvOff, childOff int, tagBuf []byte, tagOff int) (int, error) {
	if childOff < 0 {
		return 0, merry.Here(ErrInvalidParam).Appendf("child offset %d", childOff)
	}
	return findInBody(buf, tlvOff, childOff, tagBuf, tagOff)
}

func findInBody(buf []byte, off, afterOff int, tagBuf []byte, tagOff int) (int, error) {
	if buf == nil {
		return 0, merry.Here(ErrNilInput)
	}
	constructed, err := IsConstructed(buf, off)
	if err != nil {
		return 0, err
	}
	if !constructed {
		return 0, merry.Here(ErrMalformedTLV).Append("not a constructed TLV")
	}
	tagLen, err := TagSize(buf, off)
	if err != nil {
		return 0, truncated(err)
	}
	dataLen, err := DecodeLength(buf, off+tagLen)
	if err != nil {
		return 0, truncated(err)
	}
	lenLen, err := LengthLengthAt(buf, off+tagLen)
	if err != nil {
		return 0, truncated(err)
	}
	bodyOff := off + tagLen + lenLen
	if err := checkBuf(buf, bodyOff, dataLen); err != nil {
		return 0, truncated(err)
	}

	var target Tag
	if tagBuf != nil {
		target, err = TagAt(tagBuf, tagOff)
		if err != nil {
			return 0, err
		}
	}

	end := bodyOff + dataLen
	passed := afterOff < 0
	o := bodyOff
	for o < end {
		if buf[o] == eocOctet {
			o++
			continue
		}
		ctLen, err := TagSize(buf, o)
		if err != nil {
			return 0, truncated(err)
		}
		cDataLen, err := DecodeLength(buf, o+ctLen)
		if err != nil {
			return 0, truncated(err)
		}
		cLenLen, err := LengthLengthAt(buf, o+ctLen)
		if err != nil {
			return 0, truncated(err)
		}
		total := ctLen + cLenLen + cDataLen
		if o+total > end {
			return 0, merry.Here(ErrMalformedTLV).Append("child overruns container")
		}

		if !passed {
			if o == afterOff {
				passed = true
			}
		} else if target == nil || bytes.Equal(buf[o:o+ctLen], target) {
			return o, nil
		}
		o += total
	}
	if !passed {
		return 0, merry.Here(ErrInvalidParam).Appendf("no child at offset %d", afterOff)
	}
	return -1, nil
}

// ValueOffset returns the offset of the value field of the primitive TLV
// encoded at off. A constructed TLV fails with ErrMalformedTLV.
func ValueOffset(buf []byte, off int) (int, error) {
	constructed, err := IsConstructed(buf, off)
	if err != nil {
		return 0, err
	}
	if constructed {
		return 0, merry.Here(ErrMalformedTLV).Append("not a primitive TLV")
	}
	tagLen, err := TagSize(buf, off)
	if err != nil {
		return 0, err
	}
	if _, err := DecodeLength(buf, off+tagLen); err != nil {
		return 0, err
	}
	lenLen, err := LengthLengthAt(buf, off+tagLen)
	if err != nil {
		return 0, err
	}
	return off + tagLen + lenLen, nil
}

// AppendValueRaw appends vLen bytes from v at vOff to the value of the
// primitive TLV encoded in buf at off, re-emitting it in place. Returns the
// new encoded size. The TLV is parsed against the buffer's remaining
// length, and buf must have room for the grown encoding.
func AppendValueRaw(buf []byte, off int, v []byte, vOff, vLen int) (int, error) {
	if buf == nil || v == nil {
		return 0, merry.Here(ErrNilInput)
	}
	node, _, err := parseOne(buf, off, len(buf)-off)
	if err != nil {
		return 0, err
	}
	if node.Constructed() {
		return 0, merry.Here(ErrMalformedTLV).Append("not a primitive TLV")
	}
	if _, err := node.AppendValue(v, vOff, vLen); err != nil {
		return 0, err
	}
	return node.Bytes(buf, off)
}

// GetLength returns the value of the length field of the TLV encoded at
// off, skipping over the identifier octets first.
func GetLength(buf []byte, off int) (int, error) {
	if buf == nil {
		return 0, merry.Here(ErrNilInput)
	}
	tagLen, err := TagSize(buf, off)
	if err != nil {
		return 0, err
	}
	return DecodeLength(buf, off+tagLen)
}

// GetTag copies the identifier octets of the TLV at off into out at outOff
// and returns the number of octets copied.
func GetTag(buf []byte, off int, out []byte, outOff int) (int, error) {
	if buf == nil || out == nil {
		return 0, merry.Here(ErrNilInput)
	}
	tagLen, err := TagSize(buf, off)
	if err != nil {
		return 0, err
	}
	if err := checkBuf(out, outOff, tagLen); err != nil {
		return 0, err
	}
	berutil.Copy(out, outOff, buf, off, tagLen)
	return tagLen, nil
}
