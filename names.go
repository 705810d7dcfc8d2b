package bertlv

import (
	"encoding/hex"
	"strings"

	"github.com/ansel1/merry"

	"github.com/jaloonz/bertlv-go/internal/berutil"
)

// A registry of human-readable tag names, used by the describe rendering
// and the pptlv tool. Names are stored twice: the full form as registered,
// and a normalized camel-cased form for lookup by name.

var _TagValueToFullNameMap = map[string]string{}
var _TagValueToNameMap = map[string]string{}
var _TagNameToValueMap = map[string]Tag{}

// RegisterTagName associates a name with a tag's identifier octets.
func RegisterTagName(t Tag, name string) {
	_TagValueToFullNameMap[string(t)] = name
	name = berutil.NormalizeName(name)
	_TagNameToValueMap[name] = t
	_TagValueToNameMap[string(t)] = name
}

// TagName returns the normalized registered name of a tag.
func TagName(t Tag) (string, bool) {
	s, ok := _TagValueToNameMap[string(t)]
	return s, ok
}

// TagFullName returns the name exactly as registered.
func TagFullName(t Tag) (string, bool) {
	s, ok := _TagValueToFullNameMap[string(t)]
	return s, ok
}

// ParseTagName resolves a string to a Tag: either hex identifier octets
// (an optional "0x" prefix and whitespace are tolerated) or a registered
// name. Any other character makes the string invalid.
func ParseTagName(s string) (Tag, error) {
	if v, ok := _TagNameToValueMap[berutil.NormalizeName(s)]; ok {
		return v, nil
	}
	digits := strings.Join(strings.Fields(strings.TrimPrefix(s, "0x")), "")
	b, err := hex.DecodeString(digits)
	if err != nil || len(b) == 0 {
		return nil, merry.Errorf("invalid tag %q", s)
	}
	return TagAt(b, 0)
}

func init() {
	// EMV / GlobalPlatform vocabulary encountered in selection, GPO and
	// record responses.
	RegisterTagName(Tag{0x4F}, "Application Identifier (AID)")
	RegisterTagName(Tag{0x50}, "Application Label")
	RegisterTagName(Tag{0x57}, "Track 2 Equivalent Data")
	RegisterTagName(Tag{0x5A}, "Application Primary Account Number (PAN)")
	RegisterTagName(Tag{0x61}, "Application Template")
	RegisterTagName(Tag{0x6F}, "File Control Information (FCI) Template")
	RegisterTagName(Tag{0x70}, "Record Template")
	RegisterTagName(Tag{0x77}, "Response Message Template Format 2")
	RegisterTagName(Tag{0x80}, "Response Message Template Format 1")
	RegisterTagName(Tag{0x82}, "Application Interchange Profile")
	RegisterTagName(Tag{0x84}, "Dedicated File (DF) Name")
	RegisterTagName(Tag{0x87}, "Application Priority Indicator")
	RegisterTagName(Tag{0x8C}, "Card Risk Management Data Object List 1 (CDOL1)")
	RegisterTagName(Tag{0x8D}, "Card Risk Management Data Object List 2 (CDOL2)")
	RegisterTagName(Tag{0x94}, "Application File Locator (AFL)")
	RegisterTagName(Tag{0x95}, "Terminal Verification Results")
	RegisterTagName(Tag{0x9A}, "Transaction Date")
	RegisterTagName(Tag{0x9C}, "Transaction Type")
	RegisterTagName(Tag{0xA5}, "FCI Proprietary Template")
	RegisterTagName(Tag{0x5F, 0x2A}, "Transaction Currency Code")
	RegisterTagName(Tag{0x5F, 0x34}, "Application PAN Sequence Number")
	RegisterTagName(Tag{0x9F, 0x02}, "Amount, Authorised (Numeric)")
	RegisterTagName(Tag{0x9F, 0x03}, "Amount, Other (Numeric)")
	RegisterTagName(Tag{0x9F, 0x10}, "Issuer Application Data")
	RegisterTagName(Tag{0x9F, 0x1A}, "Terminal Country Code")
	RegisterTagName(Tag{0x9F, 0x26}, "Application Cryptogram")
	RegisterTagName(Tag{0x9F, 0x27}, "Cryptogram Information Data")
	RegisterTagName(Tag{0x9F, 0x36}, "Application Transaction Counter (ATC)")
	RegisterTagName(Tag{0x9F, 0x37}, "Unpredictable Number")
	RegisterTagName(Tag{0x9F, 0x38}, "Processing Options Data Object List (PDOL)")
	RegisterTagName(Tag{0x9F, 0x4B}, "Signed Dynamic Application Data")
	RegisterTagName(Tag{0x9F, 0x4E}, "Merchant Name and Location")
	RegisterTagName(Tag{0x9F, 0x5A}, "Application Program Identifier")
	RegisterTagName(Tag{0x9F, 0x66}, "Terminal Transaction Qualifiers (TTQ)")
	RegisterTagName(Tag{0xBF, 0x0C}, "FCI Issuer Discretionary Data")
}
