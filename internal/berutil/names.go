package berutil

import (
	"strings"
	"unicode"
)

// NormalizeName converts a data element name as printed in the EMV and
// GlobalPlatform dictionaries into its canonical lookup form. Those names
// separate words with spaces and punctuation and carry parenthesized
// abbreviations, e.g. "Dedicated File (DF) Name" or "Amount, Authorised
// (Numeric)". Every run of characters that is not a letter or digit acts as
// a word break; each word keeps its own casing except that its first letter
// is capitalized, and the words are joined with nothing between them:
//
//	Dedicated File (DF) Name  ->  DedicatedFileDFName
//	Amount, Authorised (Numeric)  ->  AmountAuthorisedNumeric
func NormalizeName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}
