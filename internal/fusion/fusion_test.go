// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package fusion

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/docstruct/entities"
	"github.com/sassoftware/docstruct/internal/layout"
	"github.com/sassoftware/docstruct/internal/nativeparse"
)

func span(text string, x0, y0, x1, y1 float64) entities.CharSpan {
	return entities.CharSpan{Text: text, FontID: "F1", FontSize: 12, BBox: entities.NewBBox(x0, y0, x1, y1)}
}

func TestFuseTwoParagraphsTwoTextElements(t *testing.T) {
	l1 := entities.NewLine(span("Paragraph one.", 10, 700, 200, 712))
	l2 := entities.NewLine(span("Paragraph two.", 10, 600, 200, 612))
	native := nativeparse.Result{
		PageID:   0,
		Lines:    []entities.Line{l1, l2},
		PageBBox: entities.NewBBox(0, 0, 612, 792),
	}
	boxes := []layout.LayoutBBox{
		{BBox: entities.NewBBox(5, 695, 205, 715), Class: "Paragraph", Score: 0.9},
		{BBox: entities.NewBBox(5, 595, 205, 615), Class: "Paragraph", Score: 0.9},
	}
	ids := &IDCounter{}
	page, err := Fuse(native, boxes, ids, nil)
	require.NoError(t, err)
	require.Len(t, page.Elements, 2)
	assert.Equal(t, entities.KindText, page.Elements[0].Kind)
	assert.Less(t, page.Elements[0].ID, page.Elements[1].ID)
}

func TestFuseImageOnlyNoNativeText(t *testing.T) {
	native := nativeparse.Result{PageID: 0, PageBBox: entities.NewBBox(0, 0, 612, 792)}
	boxes := []layout.LayoutBBox{
		{BBox: entities.NewBBox(100, 100, 300, 300), Class: "Picture", Score: 0.8},
	}
	ids := &IDCounter{}
	page, err := Fuse(native, boxes, ids, nil)
	require.NoError(t, err)
	require.Len(t, page.Elements, 1)
	assert.Equal(t, entities.KindImage, page.Elements[0].Kind)
	assert.False(t, page.Elements[0].NeedsOCR)
}

func TestFuseScannedPageNeedsOCRWithoutBackend(t *testing.T) {
	native := nativeparse.Result{
		PageID:      0,
		PageBBox:    entities.NewBBox(0, 0, 612, 792),
		ImageNative: image.NewRGBA(image.Rect(0, 0, 612, 792)),
	}
	boxes := []layout.LayoutBBox{
		{BBox: entities.NewBBox(10, 10, 500, 60), Class: "Text", Score: 0.8},
	}
	ids := &IDCounter{}
	page, err := Fuse(native, boxes, ids, nil)
	require.NoError(t, err)
	require.Len(t, page.Elements, 1)
	assert.True(t, page.Elements[0].NeedsOCR)
	assert.True(t, page.NeedsOCR)
	assert.Empty(t, page.Elements[0].TextBlock.Text)
}

func TestFuseOrphanLineBecomesStandaloneText(t *testing.T) {
	orphan := entities.NewLine(span("footnote", 10, 5, 100, 15))
	native := nativeparse.Result{
		PageID:   0,
		Lines:    []entities.Line{orphan},
		PageBBox: entities.NewBBox(0, 0, 612, 792),
	}
	ids := &IDCounter{}
	page, err := Fuse(native, nil, ids, nil)
	require.NoError(t, err)
	require.Len(t, page.Elements, 1)
	assert.Equal(t, entities.KindText, page.Elements[0].Kind)
	assert.Equal(t, "footnote", page.Elements[0].TextBlock.Text)
}
