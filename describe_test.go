package bertlv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription(t *testing.T) {
	tlv, err := Parse(hex2bytes(selectPPSE))
	require.NoError(t, err)

	desc := tlv.Description(0)
	t.Log(desc)

	lines := strings.Split(strings.TrimRight(desc, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.True(t, strings.HasPrefix(lines[0], "T=6F [Constructed,Application]"))
	assert.True(t, strings.HasPrefix(lines[1], "+-- T=84 [Primitive,Context]"))
	assert.True(t, strings.HasPrefix(lines[2], "+-- T=A5 [Constructed,Context]"))
	assert.True(t, strings.HasPrefix(lines[3], "    +-- T=BF0C"))
	assert.True(t, strings.HasPrefix(lines[4], "        +-- T=61"))
	assert.True(t, strings.HasPrefix(lines[5], "            +-- T=4F"))
	assert.True(t, strings.HasPrefix(lines[6], "            +-- T=87"))

	assert.Contains(t, lines[1], "V=325041592E5359532E4444463031")
	assert.Contains(t, lines[0], "L=35 (SubItems=2)")
}

func TestDescriptionRegisteredNames(t *testing.T) {
	tlv, err := Parse(hex2bytes(selectVisa))
	require.NoError(t, err)

	desc := tlv.Description(0)
	assert.Contains(t, desc, "FileControlInformationFCITemplate")
	assert.Contains(t, desc, "ProcessingOptionsDataObjectListPDOL")
}

func TestDescriptionEmptyNode(t *testing.T) {
	tlv, err := NewPrimitive(0)
	require.NoError(t, err)
	assert.Equal(t, "Invalid TLV\n", tlv.Description(0))
}

func TestListDescription(t *testing.T) {
	seq, err := ParseSequence(hex2bytes("8101005F340101"))
	require.NoError(t, err)

	s := seq.String()
	assert.True(t, strings.HasPrefix(s, "Sequential TLV (Items = 2)\n"))
	assert.Contains(t, s, "T=81 ")
	assert.Contains(t, s, "T=5F34 ")
}

func TestPrint(t *testing.T) {
	tlv, err := Parse(hex2bytes("810100"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, tlv))
	assert.Equal(t, tlv.Description(0), buf.String())
}

func TestDrawLevel(t *testing.T) {
	assert.Equal(t, "", drawLevel(0))
	assert.Equal(t, "+-- ", drawLevel(1))
	assert.Equal(t, "    +-- ", drawLevel(2))
	assert.Equal(t, "        +-- ", drawLevel(3))
}
