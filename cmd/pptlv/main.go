package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/gemalto/flume"

	"github.com/jaloonz/bertlv-go"
	"github.com/jaloonz/bertlv-go/internal/berutil"
)

const FormatText = "text"
const FormatHex = "hex"
const FormatStructure = "structure"

func main() {

	flag.Usage = func() {
		s := `pptlv - BER-TLV pretty printer

Usage:  pptlv [options] [input]

Pretty prints BER-TLV. Reads hex input and prints a tree rendering,
the normalized hex, or the structural skeleton (every primitive value
reduced to zero length).

The input argument should be a hex string. If not present, input will
be read from standard in. Any non-hex characters, such as whitespace
or embedded formatting characters, are ignored, so pasted dumps work
as-is. A buffer holding several concatenated TLVs is printed as a
sequence.

Examples:

    pptlv 6F23840E325041592E5359532E4444463031A511BF0C0E610C4F07A0000000031010870101
    echo "6F 0D 84 00 A5 09 9F38 00 BF0C 03 9F5A 00" | pptlv -o structure

Output (in 'text' format):

    T=6F [Constructed,Application] FileControlInformationFCITemplate, L=35 (SubItems=2)
    +-- T=84 [Primitive,Context] DedicatedFileDFName, L=14, V=325041592E5359532E4444463031
    +-- T=A5 [Constructed,Context] FCIProprietaryTemplate, L=17 (SubItems=1)
        +-- T=BF0C [Constructed,Context] FCIIssuerDiscretionaryData, L=14 (SubItems=1)
            +-- T=61 [Constructed,Application] ApplicationTemplate, L=12 (SubItems=2)
                +-- T=4F [Primitive,Application] ApplicationIdentifierAID, L=7, V=A0000000031010
                +-- T=87 [Primitive,Context] ApplicationPriorityIndicator, L=1, V=01
`
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), s)
		flag.PrintDefaults()
	}

	var outFormat string
	var inFile string
	var verbose bool
	flag.StringVar(&outFormat, "o", "", "output format: text|hex|structure, defaults to text")
	flag.StringVar(&inFile, "f", "", "input file name, defaults to stdin")
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Parse()

	if verbose {
		_ = flume.Configure(flume.Config{
			Development:  true,
			DefaultLevel: flume.DebugLevel,
		})
	}

	buf := bytes.NewBuffer(nil)

	if inFile != "" {
		file, err := ioutil.ReadFile(inFile)
		if err != nil {
			fail("error reading input file", err)
		}
		buf = bytes.NewBuffer(file)
	} else if inArg := flag.Arg(0); inArg != "" {
		buf.WriteString(inArg)
	} else {
		scanner := bufio.NewScanner(os.Stdin)

		for scanner.Scan() {
			buf.Write(scanner.Bytes())
		}

		if err := scanner.Err(); err != nil {
			fail("error reading standard input", err)
		}
	}

	raw, err := berutil.DecodeHex(buf.String())
	if err != nil {
		fail("error parsing hex", err)
	}
	if len(raw) == 0 {
		fail("empty input", nil)
	}

	seq, err := bertlv.ParseSequence(raw)
	if err != nil {
		fail("error parsing TLV", err)
	}

	switch strings.ToLower(outFormat) {
	case "", FormatText:
		fmt.Print(seq.Description(0))
	case FormatHex:
		printHexSequence(seq)
	case FormatStructure:
		printStructure(seq)
	default:
		fail("invalid output format: "+outFormat, nil)
	}
}

func printHexSequence(seq *bertlv.List) {
	out := make([]byte, seq.DataLength())
	if _, err := seq.WriteData(out, 0); err != nil {
		fail("error serializing TLV", err)
	}
	fmt.Println(strings.ToUpper(hex.EncodeToString(out)))
}

func printStructure(seq *bertlv.List) {
	curr := seq.Find(nil)
	for curr != nil {
		skeleton, err := bertlv.WriteStructure(curr)
		if err != nil {
			fail("error writing structure", err)
		}
		fmt.Println(strings.ToUpper(hex.EncodeToString(skeleton)))
		next, err := seq.FindNext(nil, curr, 1)
		if err != nil {
			break
		}
		curr = next
	}
}

func fail(msg string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, msg+": "+err.Error())
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
