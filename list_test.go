package bertlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SELECT response enumerating the applications on a card: eighteen
// application templates concatenated with no enclosing tag.
const selectAIDList = `
	610A4F08A000000151000000610E4F0CA000000151535041534B4D5361104F0EA0000001
	515350414C43434D414D61104D0EA0000001515350414C43434D444D610F4F0DA0000001
	515350415333535344610C4F0AA9A8A7A6A5A4A3A2A1A0610C4F0AA9A8A7A6A5A4A3A2A1
	A1610E4F0CA00000000353504200014201610E4F0CA00000015153504341534400610B4F
	09A00000015141434C0061124F10A0000000770107821D0000FE0000020061124F10A000
	00022053454353455350524F543161124F10A00000022053454353544F52414745316112
	4F10A0000002201503010300000041524143610C4F0AA0A1A2A3A4A5A6A7A8A9610C4F0A
	A0A1A2A3A4A5A6A7A8AA61124F10A000000077020760110000FE0000FE00610B4F09A000
	00015143525300`

func TestParseSequence(t *testing.T) {
	raw := hex2bytes(selectAIDList)
	seq, err := ParseSequence(raw)
	require.NoError(t, err)
	assert.Equal(t, 18, seq.Len())
	assert.Equal(t, len(raw), seq.DataLength())

	out := make([]byte, seq.DataLength())
	n, err := seq.WriteData(out, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, out[:n])
}

func TestListInitSkipsEOC(t *testing.T) {
	// lone zero octets between TLVs are tolerated and dropped
	seq, err := ParseSequence(hex2bytes("0081010000005F340101"))
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Len())

	out := make([]byte, seq.DataLength())
	n, err := seq.WriteData(out, 0)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("8101005F340101"), out[:n])
}

func TestListFindNext(t *testing.T) {
	seq, err := ParseSequence(hex2bytes("5A01115F3401015A01225A0133"))
	require.NoError(t, err)
	require.Equal(t, 4, seq.Len())

	panTag, err := TagAt(hex2bytes("5A"), 0)
	require.NoError(t, err)

	first := seq.Find(panTag)
	require.NotNil(t, first)

	second, err := seq.FindNext(panTag, first, 1)
	require.NoError(t, err)
	require.NotNil(t, second)
	enc, err := second.Encoded()
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("5A0122"), enc)

	third, err := seq.FindNext(panTag, first, 2)
	require.NoError(t, err)
	require.NotNil(t, third)
	enc, err = third.Encoded()
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("5A0133"), enc)

	// exhausted: no error, no match
	none, err := seq.FindNext(panTag, third, 1)
	require.NoError(t, err)
	assert.Nil(t, none)

	// nil tag matches any node
	next, err := seq.FindNext(nil, first, 1)
	require.NoError(t, err)
	require.NotNil(t, next)
	enc, err = next.Encoded()
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("5F340101"), enc)

	// a node that is not an element
	stranger, err := Parse(hex2bytes("810100"))
	require.NoError(t, err)
	_, err = seq.FindNext(panTag, stranger, 1)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))

	_, err = seq.FindNext(panTag, first, 0)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))
}

func TestListDeleteScansAllChildren(t *testing.T) {
	seq, err := ParseSequence(hex2bytes("5A01115F3401015A01225A0133"))
	require.NoError(t, err)

	probe, err := Parse(hex2bytes("5A00"))
	require.NoError(t, err)

	// delete the third occurrence, which sits after a non-matching node
	_, err = seq.Delete(probe, 3)
	require.NoError(t, err)

	out := make([]byte, seq.DataLength())
	n, err := seq.WriteData(out, 0)
	require.NoError(t, err)
	assert.Equal(t, hex2bytes("5A01115F3401015A0122"), out[:n])

	_, err = seq.Delete(probe, 3)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))
}

func TestListNoExpand(t *testing.T) {
	l, err := NewList(1)
	require.NoError(t, err)
	l.DisableAutoExpand()

	a, err := Parse(hex2bytes("810100"))
	require.NoError(t, err)
	_, err = l.Append(a)
	require.NoError(t, err)

	b, err := Parse(hex2bytes("820100"))
	require.NoError(t, err)
	_, err = l.Append(b)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInsufficientStorage))
}

func TestDataLengthSkipsOversizedChildren(t *testing.T) {
	l, err := NewList(0)
	require.NoError(t, err)

	small, err := Parse(hex2bytes("810100"))
	require.NoError(t, err)
	_, err = l.Append(small)
	require.NoError(t, err)

	big, err := NewPrimitive(0)
	require.NoError(t, err)
	tag, err := TagAt(hex2bytes("C8"), 0)
	require.NoError(t, err)
	_, err = big.InitValue(tag, make([]byte, 40000), 0, 40000)
	require.Error(t, err)
	assert.True(t, Is(err, ErrTLVLengthGreaterThan32767))

	// the oversized node is held but contributes nothing to the sum
	_, err = l.Append(big)
	require.NoError(t, err)
	assert.Equal(t, 3, l.DataLength())
	assert.Equal(t, 2, l.Len())
}

func TestNegativeCapacity(t *testing.T) {
	_, err := NewList(-1)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))

	_, err = NewPrimitive(-1)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))

	_, err = NewConstructed(-1)
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidParam))
}
