package bertlv

import (
	"fmt"

	"github.com/ansel1/merry"
)

// Reason is the machine-readable failure category carried by every error
// returned from this package. Callers that need to branch on the failure
// mode should use ReasonOf (or Is with one of the Err sentinels) rather
// than matching error strings.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonInvalidParam
	ReasonIllegalSize
	ReasonEmptyTag
	ReasonEmptyTLV
	ReasonMalformedTag
	ReasonMalformedTLV
	ReasonInsufficientStorage
	ReasonTagSizeGreaterThan127
	ReasonTagNumberGreaterThan32767
	ReasonTLVSizeGreaterThan32767
	ReasonTLVLengthGreaterThan32767
	ReasonIndexOutOfBounds
	ReasonNilInput
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonInvalidParam:
		return "InvalidParam"
	case ReasonIllegalSize:
		return "IllegalSize"
	case ReasonEmptyTag:
		return "EmptyTag"
	case ReasonEmptyTLV:
		return "EmptyTLV"
	case ReasonMalformedTag:
		return "MalformedTag"
	case ReasonMalformedTLV:
		return "MalformedTLV"
	case ReasonInsufficientStorage:
		return "InsufficientStorage"
	case ReasonTagSizeGreaterThan127:
		return "TagSizeGreaterThan127"
	case ReasonTagNumberGreaterThan32767:
		return "TagNumberGreaterThan32767"
	case ReasonTLVSizeGreaterThan32767:
		return "TLVSizeGreaterThan32767"
	case ReasonTLVLengthGreaterThan32767:
		return "TLVLengthGreaterThan32767"
	case ReasonIndexOutOfBounds:
		return "IndexOutOfBounds"
	case ReasonNilInput:
		return "NilInput"
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

var ErrInvalidParam = reasonErr(ReasonInvalidParam, "invalid parameter")
var ErrIllegalSize = reasonErr(ReasonIllegalSize, "illegal size")
var ErrEmptyTag = reasonErr(ReasonEmptyTag, "tag is empty")
var ErrEmptyTLV = reasonErr(ReasonEmptyTLV, "TLV is empty")
var ErrMalformedTag = reasonErr(ReasonMalformedTag, "malformed tag")
var ErrMalformedTLV = reasonErr(ReasonMalformedTLV, "malformed TLV")
var ErrInsufficientStorage = reasonErr(ReasonInsufficientStorage, "insufficient storage")
var ErrTagSizeGreaterThan127 = reasonErr(ReasonTagSizeGreaterThan127, "tag size greater than 127")
var ErrTagNumberGreaterThan32767 = reasonErr(ReasonTagNumberGreaterThan32767, "tag number greater than 32767")
var ErrTLVSizeGreaterThan32767 = reasonErr(ReasonTLVSizeGreaterThan32767, "TLV size greater than 32767")
var ErrTLVLengthGreaterThan32767 = reasonErr(ReasonTLVLengthGreaterThan32767, "TLV length greater than 32767")

// ErrIndexOutOfBounds reports a caller error: an offset or count that does
// not fit the supplied buffer. It is deliberately distinct from
// ErrMalformedTLV, which reports a defect in the data itself.
var ErrIndexOutOfBounds = reasonErr(ReasonIndexOutOfBounds, "index out of bounds")

// ErrNilInput reports a nil buffer where one is required.
var ErrNilInput = reasonErr(ReasonNilInput, "nil input")

func Is(err error, originals ...error) bool {
	return merry.Is(err, originals...)
}

func Details(err error) string {
	return merry.Details(err)
}

type errKey int

const (
	errorKeyReason errKey = iota
)

func init() {
	merry.RegisterDetail("Reason", errorKeyReason)
}

func reasonErr(r Reason, msg string) error {
	return merry.New(msg).WithValue(errorKeyReason, r)
}

// checkBuf verifies that n bytes are addressable in b at off.
func checkBuf(b []byte, off, n int) error {
	if b == nil {
		return merry.Here(ErrNilInput)
	}
	if off < 0 || n < 0 || off+n > len(b) {
		return merry.Here(ErrIndexOutOfBounds).Appendf("offset %d count %d length %d", off, n, len(b))
	}
	return nil
}

// ReasonOf extracts the reason code from an error returned by this package.
// It returns ReasonNone for nil and for foreign errors.
func ReasonOf(err error) Reason {
	v := merry.Value(err, errorKeyReason)
	switch t := v.(type) {
	case nil:
		return ReasonNone
	case Reason:
		return t
	default:
		panic(fmt.Sprintf("err reason attribute's value was wrong type, expected Reason, got %T", v))
	}
}
