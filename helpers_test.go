package bertlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedTag(t *testing.T) {
	one, err := TagAt(hex2bytes("84"), 0)
	require.NoError(t, err)
	packed, err := PackedTag(one)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0084), packed)

	two, err := TagAt(hex2bytes("9F38"), 0)
	require.NoError(t, err)
	packed, err = PackedTag(two)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9F38), packed)

	long, err := TagAt(hex2bytes("BF81FF7F"), 0)
	require.NoError(t, err)
	_, err = PackedTag(long)
	require.Error(t, err)
	assert.True(t, Is(err, ErrIllegalSize))

	_, err = PackedTag(nil)
	require.Error(t, err)
	assert.True(t, Is(err, ErrEmptyTag))
}

func TestMakeTag(t *testing.T) {
	out := make([]byte, 2)

	n, err := MakeTag(0x0084, out, 0)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("84"), out[:n])

	n, err = MakeTag(0x9F38, out, 0)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("9F38"), out[:n])

	_, err = MakeTag(0x9F38, nil, 0)
	require.Error(t, err)
	assert.True(t, Is(err, ErrNilInput))
}

func TestMakeTagValue(t *testing.T) {
	tag, err := MakeTagValue(0x9F38)
	require.NoError(t, err)
	assert.Equal(t, "9F38", tag.String())

	number, err := tag.Number()
	require.NoError(t, err)
	assert.Equal(t, 56, number)
}

func TestMakeTLVPrimitive(t *testing.T) {
	out := make([]byte, 16)
	n, err := MakeTLV(0x005A, hex2bytes("1234567890123456"), out, 0)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("5A081234567890123456"), out[:n])
}

func TestMakeTLVConstructed(t *testing.T) {
	// a constructed tag parses its value as children
	body := hex2bytes("8407A0000000031010")
	enc, err := MakeTLVBytes(0x006F, body)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("6F098407A0000000031010"), enc)

	// malformed children are rejected
	_, err = MakeTLVBytes(0x006F, hex2bytes("84FF"))
	require.Error(t, err)
}

func TestMakeTLVEmptyValue(t *testing.T) {
	enc, err := MakeTLVBytes(0x9F38, nil)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("9F3800"), enc)
}

func TestConcatTLV(t *testing.T) {
	a := hex2bytes("810100")
	b := hex2bytes("5F340101")
	assert.Equal(t, hex2bytes("8101005F340101"), ConcatTLV(a, b))
	assert.Equal(t, a, ConcatTLV(a, nil))
	assert.Equal(t, b, ConcatTLV(nil, b))
}
