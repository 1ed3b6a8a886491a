// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/docstruct/entities"
)

func textEl(page, id int, x0, y0, x1, y1 float64) entities.Element {
	return entities.Element{
		ID: id, PageID: page, Kind: entities.KindText,
		BBox:      entities.NewBBox(x0, y0, x1, y1),
		TextBlock: entities.TextBlock{Text: "text"},
	}
}

func TestMergeSinglePageTwoParagraphsStayDistinct(t *testing.T) {
	e1 := textEl(0, 0, 10, 600, 200, 612)
	e2 := textEl(0, 1, 10, 100, 200, 112) // far vertical gap -> distinct block
	blocks, err := Merge([]entities.Element{e1, e2}, map[int]float64{0: 792}, nil)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestMergeCrossPageContinuation(t *testing.T) {
	e1 := textEl(0, 0, 10, 770, 200, 790) // near bottom of page 0 (height 792)
	e2 := textEl(1, 1, 10, 5, 200, 25)    // near top of page 1
	blocks, err := Merge([]entities.Element{e1, e2}, map[int]float64{0: 792, 1: 792}, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, []int{0, 1}, blocks[0].PagesID)
}

func TestMergeTitleNeverMerges(t *testing.T) {
	t1 := entities.Element{ID: 0, PageID: 0, Kind: entities.KindTitle, BBox: entities.NewBBox(0, 0, 10, 10), TextBlock: entities.TextBlock{MeanFontSize: 24}}
	t2 := entities.Element{ID: 1, PageID: 0, Kind: entities.KindTitle, BBox: entities.NewBBox(0, 0, 10, 10), TextBlock: entities.TextBlock{MeanFontSize: 24}}
	levels := map[float64]int{24: 1}
	blocks, err := Merge([]entities.Element{t1, t2}, map[int]float64{0: 792}, levels)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.Equal(t, entities.BlockTitle, b.Kind)
		assert.Equal(t, 1, b.Level)
	}
}

func TestMergeBboxSubsumptionInvariant(t *testing.T) {
	e1 := textEl(0, 0, 10, 600, 200, 612)
	e2 := textEl(0, 1, 10, 580, 220, 599)
	blocks, err := Merge([]entities.Element{e1, e2}, map[int]float64{0: 792}, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	union := e1.BBox.Merge(e2.BBox)
	assert.Equal(t, union, blocks[0].BBox)
}
