package bertlv

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/flume"
)

var fillLog = flume.New("bertlv_fill")

// FillTemplate parses structure as a TLV skeleton (a tree whose primitive
// leaves carry zero-length values), substitutes leaf values from the map of
// packed tags, and returns the re-encoded bytes.
//
// When removeMissing is false, leaves absent from the map keep a
// zero-length value. When removeMissing is true they are pruned, along with
// any constructed node whose entire subtree came up empty; the root is
// never pruned, only emptied.
func FillTemplate(structure []byte, values map[uint16][]byte, removeMissing bool) ([]byte, error) {
	if structure == nil {
		return nil, merry.Here(ErrNilInput)
	}
	tlv, err := Parse(structure)
	if err != nil {
		return nil, err
	}
	tlv.Fill(values, removeMissing)
	return tlv.Encoded()
}

// WriteStructure normalizes every primitive value in the tree to zero
// length and returns the re-encoded skeleton bytes.
func WriteStructure(tlv *TLV) ([]byte, error) {
	if tlv == nil {
		return nil, merry.Here(ErrNilInput)
	}
	tlv.Fill(nil, false)
	return tlv.Encoded()
}

// Fill walks the subtree depth-first applying the template substitution
// described at FillTemplate, and reports whether any leaf below this node
// received a value. Nodes that fail to re-encode along the way are treated
// as absent.
func (t *TLV) Fill(values map[uint16][]byte, removeMissing bool) bool {
	if t.kind != kindConstructed {
		return t.fillLeaf(values, removeMissing)
	}

	present := false
	var last *TLV
	curr := t.Find(nil)
	for curr != nil {
		deleted := false
		if curr.Fill(values, removeMissing) {
			present = true
		} else if removeMissing {
			deleted = t.deleteChild(curr)
		}

		if !deleted {
			last = curr
		}
		if last == nil {
			curr = t.Find(nil)
		} else {
			curr, _ = t.FindNext(nil, last, 1)
		}
	}
	return present
}

func (t *TLV) fillLeaf(values map[uint16][]byte, removeMissing bool) bool {
	key, err := PackedTag(t.tag)
	if err == nil && values != nil {
		if v, ok := values[key]; ok {
			if _, err := t.ReplaceValue(v, 0, len(v)); err != nil {
				return false
			}
			fillLog.Debug("filled leaf", "tag", t.tag.String(), "len", len(v))
			return true
		}
	}
	if removeMissing {
		fillLog.Debug("leaf missing", "tag", t.tag.String())
		return false
	}
	if _, err := t.ReplaceValue(nil, 0, 0); err != nil {
		return false
	}
	return true
}

// deleteChild removes exactly the given child, addressing it by its
// occurrence index among same-tagged siblings.
func (t *TLV) deleteChild(child *TLV) bool {
	occurrence := 0
	for _, item := range t.children.items {
		if item.tag.Equal(child.tag) {
			occurrence++
		}
		if item == child {
			break
		}
	}
	if occurrence == 0 {
		return false
	}
	if _, err := t.Delete(child, occurrence); err != nil {
		return false
	}
	fillLog.Debug("pruned subtree", "tag", child.tag.String())
	return true
}
