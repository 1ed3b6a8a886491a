// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package fusion implements page fusion: reconciling native text lines
// against layout-detector boxes, with an OCR fallback for boxes that have
// no matching native text.
package fusion

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sassoftware/docstruct/entities"
	"github.com/sassoftware/docstruct/internal/layout"
	"github.com/sassoftware/docstruct/internal/nativeparse"
	"github.com/sassoftware/docstruct/logger"
)

// Thresholds exposed as configuration constants.
var (
	LineOverlapThreshold  = 0.1 // tau_line_overlap
	OrphanDistanceFactor  = 2.0 // tau_orphan_distance, in multiples of median line height
)

var textualClasses = map[string]bool{
	"Title": true, "Section-header": true, "Text": true, "Paragraph": true,
	"List-item": true, "Page-header": true, "Page-footer": true, "Caption": true,
}

// IDCounter is the orchestrator-owned monotonic element-id source:
// element ids are assigned in reading order from a single counter
// shared across the whole document. Fusion tasks for different pages
// run concurrently, so Next is mutex-guarded.
type IDCounter struct {
	mu   sync.Mutex
	next int
}

// Next returns the next id and advances the counter.
func (c *IDCounter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	return id
}

// Fuse reconciles one page's native lines against its layout boxes,
// producing a StructuredPage.
func Fuse(native nativeparse.Result, boxes []layout.LayoutBBox, ids *IDCounter, ocr Backend) (entities.StructuredPage, error) {
	lines := append([]entities.Line(nil), native.Lines...)
	medianLineHeight := medianHeight(lines)

	ordered := sortReadingOrder(boxes, medianLineHeight)

	var elements []entities.Element
	claimed := make([]bool, len(lines))
	needsOCR := false

	for _, box := range ordered {
		var matched []int
		for i, ln := range lines {
			if claimed[i] {
				continue
			}
			if ln.BBox.IoU(box.BBox) >= LineOverlapThreshold || box.BBox.ContainsPoint(ln.BBox.CenterX(), ln.BBox.CenterY()) {
				matched = append(matched, i)
			}
		}
		var matchedLines []entities.Line
		for _, i := range matched {
			claimed[i] = true
			matchedLines = append(matchedLines, lines[i])
		}

		kind := entities.KindForClass(box.Class)
		el := entities.Element{
			ID:          ids.Next(),
			PageID:      native.PageID,
			Kind:        kind,
			BBox:        box.BBox,
			LayoutScore: box.Score,
		}

		if len(matchedLines) == 0 && textualClasses[box.Class] {
			needsOCR = true
			el.NeedsOCR = true
			if ocrLines, err := ocrFallback(ocr, native, box.BBox); err == nil && len(ocrLines) > 0 {
				matchedLines = ocrLines
				el.NeedsOCR = false
			} else {
				logger.Debug("fusion: ocr fallback unavailable or empty", true)
			}
		}

		el.TextBlock = buildTextBlock(matchedLines)
		elements = append(elements, el)
	}

	// Orphan lines: attach to the nearest textual element within
	// OrphanDistanceFactor*medianLineHeight, else standalone Text
	// elements.
	for i, ln := range lines {
		if claimed[i] {
			continue
		}
		if idx, ok := nearestTextual(elements, ln.BBox, OrphanDistanceFactor*medianLineHeight); ok {
			elements[idx] = attachLine(elements[idx], ln)
			continue
		}
		elements = append(elements, entities.Element{
			ID:        ids.Next(),
			PageID:    native.PageID,
			Kind:      entities.KindText,
			BBox:      ln.BBox,
			TextBlock: buildTextBlock([]entities.Line{ln}),
		})
	}

	sort.SliceStable(elements, func(i, j int) bool { return elements[i].ID < elements[j].ID })

	return entities.StructuredPage{
		ID:       native.PageID,
		Width:    native.PageBBox.Width(),
		Height:   native.PageBBox.Height(),
		Elements: elements,
		Image:    native.ImageNative,
		NeedsOCR: needsOCR,
	}, nil
}

// sortReadingOrder orders boxes by primary row band then secondary x0.
func sortReadingOrder(boxes []layout.LayoutBBox, medianLineHeight float64) []layout.LayoutBBox {
	band := medianLineHeight * 0.5
	if band <= 0 {
		band = 1
	}
	out := append([]layout.LayoutBBox(nil), boxes...)
	sort.SliceStable(out, func(i, j int) bool {
		bi := math.Floor(out[i].BBox.Y0 / band)
		bj := math.Floor(out[j].BBox.Y0 / band)
		if bi != bj {
			return bi < bj
		}
		return out[i].BBox.X0 < out[j].BBox.X0
	})
	return out
}

func medianHeight(lines []entities.Line) float64 {
	if len(lines) == 0 {
		return 12
	}
	hs := make([]float64, len(lines))
	for i, l := range lines {
		hs[i] = l.BBox.Height()
	}
	sort.Float64s(hs)
	return hs[len(hs)/2]
}

func buildTextBlock(lines []entities.Line) entities.TextBlock {
	parts := make([]string, 0, len(lines))
	var sizeSum, sizeWeight float64
	for _, l := range lines {
		parts = append(parts, l.Text())
		sizeSum += l.MeanFontSize()
		sizeWeight++
	}
	mean := 0.0
	if sizeWeight > 0 {
		mean = sizeSum / sizeWeight
	}
	return entities.TextBlock{
		Text:         strings.Join(parts, " "),
		MeanFontSize: mean,
		Lines:        lines,
	}
}

func attachLine(el entities.Element, ln entities.Line) entities.Element {
	el.BBox = el.BBox.Merge(ln.BBox)
	el.TextBlock.Lines = append(el.TextBlock.Lines, ln)
	el.TextBlock = buildTextBlock(el.TextBlock.Lines)
	return el
}

func nearestTextual(elements []entities.Element, bbox entities.BBox, maxDist float64) (int, bool) {
	best := -1
	bestDist := math.MaxFloat64
	for i, el := range elements {
		if !textualClasses[reverseKind(el.Kind)] {
			continue
		}
		dx := el.BBox.CenterX() - bbox.CenterX()
		dy := el.BBox.CenterY() - bbox.CenterY()
		dist := math.Hypot(dx, dy)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	if best >= 0 && bestDist <= maxDist {
		return best, true
	}
	return -1, false
}

// reverseKind approximates the layout class family for an already-mapped
// ElementKind, used only to decide orphan-attachment eligibility.
func reverseKind(k entities.ElementKind) string {
	switch k {
	case entities.KindImage:
		return "Picture"
	case entities.KindTable:
		return "Table"
	default:
		return "Text"
	}
}
