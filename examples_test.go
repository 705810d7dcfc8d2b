package bertlv_test

import (
	"encoding/hex"
	"fmt"
	"strings"

	bertlv "github.com/jaloonz/bertlv-go"
)

func ExampleParse() {
	// FCI returned by SELECT on a Visa ADF
	raw, _ := hex.DecodeString("6F348407A0000000031010A5299F381B9F66049F02069F03069F1A0295055F2A029A039C019F37049F4E14BF0C089F5A054007020702")

	tlv, _ := bertlv.Parse(raw)

	dfName, _ := bertlv.TagAt([]byte{0x84}, 0)
	aid := tlv.Find(dfName)

	v := make([]byte, 16)
	n, _ := aid.Value(v, 0)
	fmt.Println(strings.ToUpper(hex.EncodeToString(v[:n])))

	// Output: A0000000031010
}

func ExampleFillTemplate() {
	// skeleton: emit these tags in this nesting, values to be filled in
	skeleton, _ := hex.DecodeString("6F0D8400A5099F3800BF0C039F5A00")

	values := map[uint16][]byte{
		0x0084: {0xA0, 0x00, 0x00, 0x00, 0x03, 0x10, 0x10},
	}

	out, _ := bertlv.FillTemplate(skeleton, values, true)
	fmt.Println(strings.ToUpper(hex.EncodeToString(out)))

	// Output: 6F098407A0000000031010
}

func ExampleTLV_AppendValue() {
	raw, _ := hex.DecodeString("C80100")
	tlv, _ := bertlv.Parse(raw)

	data := []byte{0x12, 0x34, 0x56, 0x78}
	_, _ = tlv.AppendValue(data, 0, len(data))

	out, _ := tlv.Encoded()
	fmt.Println(strings.ToUpper(hex.EncodeToString(out)))

	// Output: C8050012345678
}
