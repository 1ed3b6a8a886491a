// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package merge implements the block merger and title leveler:
// cross-page stitching of elements into blocks, and 1-D k-means over
// title font sizes.
package merge

import (
	"math"
	"sort"

	"github.com/sassoftware/docstruct/entities"
)

// Thresholds exposed as configuration constants.
var (
	HOverlapThreshold = 0.3  // tau_hoverlap
	VGapFactor        = 1.5  // tau_vgap, in multiples of median line height
	PageEdgeBand      = 0.12 // fraction of page height counted as "near top/bottom"
)

// Merge stitches elements (already sorted by page_id then element id,
// processed in document reading order) into blocks, using
// titleLevels (produced by KMeansLevels) to assign Title.Level. Returns
// an error identifying the offending element the moment an invariant is
// violated mid-merge.
func Merge(elements []entities.Element, pageHeights map[int]float64, titleLevels map[float64]int) ([]entities.Block, error) {
	ordered := append([]entities.Element(nil), elements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PageID != ordered[j].PageID {
			return ordered[i].PageID < ordered[j].PageID
		}
		return ordered[i].ID < ordered[j].ID
	})

	medianLineHeight := medianElementHeight(ordered)

	var blocks []entities.Block
	var open *entities.Block
	var openIdx int

	flush := func() {
		if open != nil {
			blocks = append(blocks, *open)
			open = nil
		}
	}

	for _, el := range ordered {
		if el.Kind == entities.KindTitle || el.Kind == entities.KindSubtitle {
			flush()
			b := entities.NewBlock(nextBlockID(blocks, openIdx), el)
			b.Level = titleLevels[bucketFontSize(el.TextBlock.MeanFontSize)]
			blocks = append(blocks, b)
			continue
		}

		if open != nil && open.CanMerge(el) && canContinue(*open, el, pageHeights, medianLineHeight) {
			merged, err := open.Merge(el)
			if err != nil {
				return nil, entities.NewBlockMergeError(open.ID, el.Kind, err)
			}
			open = &merged
			continue
		}

		flush()
		b := entities.NewBlock(nextBlockID(blocks, openIdx), el)
		open = &b
	}
	flush()

	return blocks, nil
}

func nextBlockID(blocks []entities.Block, _ int) int { return len(blocks) }

// canContinue decides whether el continues the open block: horizontal
// overlap or cross-page top/bottom matching, and vertical gap or
// cross-page continuation banding.
func canContinue(open entities.Block, el entities.Element, pageHeights map[int]float64, medianLineHeight float64) bool {
	lastPage := open.PagesID[len(open.PagesID)-1]
	if lastPage == el.PageID {
		hOverlap := horizontalOverlapFraction(open.BBox, el.BBox)
		gap := el.BBox.Y0 - open.BBox.Y1
		if gap < 0 {
			gap = open.BBox.Y0 - el.BBox.Y1
		}
		return hOverlap >= HOverlapThreshold && gap <= VGapFactor*medianLineHeight
	}
	if el.PageID == lastPage+1 {
		hOverlap := horizontalOverlapFraction(open.BBox, el.BBox)
		ph := pageHeights[lastPage]
		nearBottom := ph == 0 || open.BBox.Y1 >= ph*(1-PageEdgeBand)
		nearTop := el.BBox.Y0 <= pageHeights[el.PageID]*PageEdgeBand || pageHeights[el.PageID] == 0
		return hOverlap >= HOverlapThreshold && nearBottom && nearTop
	}
	return false
}

func horizontalOverlapFraction(a, b entities.BBox) float64 {
	x0 := math.Max(a.X0, b.X0)
	x1 := math.Min(a.X1, b.X1)
	if x1 <= x0 {
		return 0
	}
	overlap := x1 - x0
	narrower := math.Min(a.Width(), b.Width())
	if narrower <= 0 {
		return 0
	}
	return overlap / narrower
}

func medianElementHeight(elements []entities.Element) float64 {
	if len(elements) == 0 {
		return 12
	}
	hs := make([]float64, len(elements))
	for i, e := range elements {
		hs[i] = e.BBox.Height()
	}
	sort.Float64s(hs)
	return hs[len(hs)/2]
}

// bucketFontSize rounds a font size to the nearest point, the bucketing
// scheme titleLevels is keyed by.
func bucketFontSize(size float64) float64 { return math.Round(size) }
