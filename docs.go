// Package bertlv parses, edits, and re-encodes BER-TLV byte structures as
// defined by the ASN.1 Basic Encoding Rules (ISO/IEC 8825-1). It is aimed at
// smart card tooling: decoding APDU responses (PPSE/ADF selection, GET
// PROCESSING OPTIONS, READ RECORD), composing template-driven requests, and
// editing values inside nested TLV trees without disturbing the wire form.
//
// Only the definite length form is supported. The contents octets of the
// value (V) field are treated as opaque bytes; this package does not
// interpret them beyond the primitive/constructed split encoded in the tag.
//
// The package works at three levels:
//
// Tag and length codecs: TagSize, TagNumber, TagClass, IsConstructed,
// TagToBytes, DecodeLength, EncodeLength and friends operate directly on
// byte slices with no allocation.
//
// TLV trees: Parse builds a tree of TLV nodes from a byte buffer. Nodes can
// be searched (Find, FindNext), edited (Append, Delete, AppendValue,
// ReplaceValue) and serialized back with Bytes. ParseSequence handles
// buffers holding several concatenated TLVs with no enclosing tag.
//
// Templates: FillTemplate takes a structural skeleton (a TLV tree whose
// primitive values are all zero length) plus a map of packed tags to value
// bytes, and produces a concrete TLV stream, either zeroing or pruning the
// entries the map does not cover.
package bertlv
