package berutil

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ansel1/merry"
)

var ErrInvalidHexString = errors.New("invalid hex string")

// StripNonHex removes every rune that is not a hex digit. It lets callers
// accept hex dumps with embedded whitespace or punctuation.
func StripNonHex(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return -1 // drop
		}
		return r
	}, s)
}

// DecodeHex decodes a hex string after stripping non-hex characters. A "0x"
// prefix is tolerated.
func DecodeHex(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
	}
	b, err := hex.DecodeString(StripNonHex(s))
	if err != nil {
		return nil, merry.Here(ErrInvalidHexString).WithCause(err)
	}
	return b, nil
}
