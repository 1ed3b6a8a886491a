// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlockKind is the post-stitch block vocabulary.
type BlockKind string

const (
	BlockHeader BlockKind = "Header"
	BlockFooter BlockKind = "Footer"
	BlockTitle  BlockKind = "Title"
	BlockList   BlockKind = "List"
	BlockText   BlockKind = "Text"
	BlockImage  BlockKind = "Image"
	BlockTable  BlockKind = "Table"
)

// compatibleKind reports whether an element's ElementKind may contribute
// to a block of the given BlockKind: same kind-class after mapping.
func compatibleKind(bk BlockKind, ek ElementKind) bool {
	switch bk {
	case BlockHeader:
		return ek == KindHeader
	case BlockFooter:
		return ek == KindFooter
	case BlockTitle:
		return ek == KindTitle || ek == KindSubtitle
	case BlockList:
		return ek == KindListItem
	case BlockText:
		return ek == KindText || ek == KindCaption
	case BlockImage:
		return ek == KindImage
	case BlockTable:
		return ek == KindTable
	default:
		return false
	}
}

// blockKindForElement maps a fused element to the block kind it seeds.
func blockKindForElement(ek ElementKind) BlockKind {
	switch ek {
	case KindHeader:
		return BlockHeader
	case KindFooter:
		return BlockFooter
	case KindTitle, KindSubtitle:
		return BlockTitle
	case KindListItem:
		return BlockList
	case KindImage:
		return BlockImage
	case KindTable:
		return BlockTable
	default:
		return BlockText
	}
}

// neverMerges reports whether blocks of this kind always carry exactly
// one contributing element: Title, Image, and Table blocks never merge.
func neverMerges(bk BlockKind) bool {
	return bk == BlockTitle || bk == BlockImage || bk == BlockTable
}

// Block is the post-stitch output of the block merger.
type Block struct {
	ID       int
	Kind     BlockKind
	PagesID  []int
	BBox     BBox
	Text     string   // Header, Footer, Text, Table
	Items    []string // List
	Level    int      // Title
	Caption  string   // Image
	elements []Element
}

// NewBlock seeds a block from its first contributing element.
func NewBlock(id int, el Element) Block {
	b := Block{
		ID:      id,
		Kind:    blockKindForElement(el.Kind),
		PagesID: []int{el.PageID},
		BBox:    el.BBox,
	}
	b.elements = []Element{el}
	b.absorbText(el)
	return b
}

func (b *Block) absorbText(el Element) {
	switch b.Kind {
	case BlockList:
		b.Items = append(b.Items, strings.TrimSpace(el.TextBlock.Text))
	case BlockImage:
		b.Caption = strings.TrimSpace(el.TextBlock.Text)
	default:
		if b.Text == "" {
			b.Text = strings.TrimSpace(el.TextBlock.Text)
		} else {
			b.Text = b.Text + " " + strings.TrimSpace(el.TextBlock.Text)
		}
	}
}

// CanMerge reports whether el may be absorbed into b without violating
// the kind-compatibility invariant.
func (b Block) CanMerge(el Element) bool {
	if neverMerges(b.Kind) {
		return false
	}
	return compatibleKind(b.Kind, el.Kind)
}

// Merge absorbs el into b, extending PagesID (kept strictly increasing),
// bbox, and kind-specific payload. Callers must check CanMerge first; a
// violated precondition here is a programmer error that this method
// returns as a plain error, which the block merger wraps in a
// BlockMergeError (see errors.go).
func (b Block) Merge(el Element) (Block, error) {
	if !b.CanMerge(el) {
		return b, fmt.Errorf("merge block %d (kind %s): incompatible element kind %s", b.ID, b.Kind, el.Kind)
	}
	if len(b.PagesID) == 0 || b.PagesID[len(b.PagesID)-1] != el.PageID {
		b.PagesID = append(b.PagesID, el.PageID)
	}
	b.BBox = b.BBox.Merge(el.BBox)
	b.elements = append(b.elements, el)
	b.absorbText(el)
	return b, nil
}

// Elements returns the elements contributing to b, in merge order; used
// by tests asserting bbox subsumption.
func (b Block) Elements() []Element { return b.elements }

// blockJSON is the wire shape for Block: a block_type discriminator plus
// kind-specific payload.
type blockJSON struct {
	BlockType string    `json:"block_type"`
	ID        int       `json:"id"`
	PagesID   []int     `json:"pages_id"`
	BBox      BBox      `json:"bbox"`
	Level     int       `json:"level,omitempty"`
	Text      string    `json:"text,omitempty"`
	Items     []string  `json:"items,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Path      string    `json:"path,omitempty"`
}

// MarshalJSON implements the persisted-output schema: Title carries
// level+text, List carries items, Image carries caption and a derived
// img_{id}.png path.
func (b Block) MarshalJSON() ([]byte, error) {
	out := blockJSON{
		BlockType: string(b.Kind),
		ID:        b.ID,
		PagesID:   b.PagesID,
		BBox:      b.BBox,
	}
	switch b.Kind {
	case BlockTitle:
		out.Level = b.Level
		out.Text = b.Text
	case BlockList:
		out.Items = b.Items
	case BlockImage:
		out.Caption = b.Caption
		out.Path = b.ImagePath()
	default:
		out.Text = b.Text
	}
	return json.Marshal(out)
}

// ImagePath returns the derived on-disk crop path for an Image block.
func (b Block) ImagePath() string {
	return fmt.Sprintf("img_%d.png", b.ID)
}
