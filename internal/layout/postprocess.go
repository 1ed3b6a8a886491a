// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"sort"

	"github.com/sassoftware/docstruct/entities"
)

// recordStride is the per-detection record width the model emits:
// x0, y0, x1, y1, score, class_index.
const recordStride = 6

// decodeOutputs turns the flat model output into candidate boxes with
// class scores and applies score thresholding + NMS. Box
// coordinates here are in detector (letterboxed) pixel space; the caller
// scales them back via downscale_factor.
func decodeOutputs(data []float32) ([]LayoutBBox, error) {
	var candidates []LayoutBBox
	for i := 0; i+recordStride <= len(data); i += recordStride {
		score := float64(data[i+4])
		if score < ScoreThreshold {
			continue
		}
		class := classNameFor(int(data[i+5]))
		candidates = append(candidates, LayoutBBox{
			BBox:  entities.NewBBox(float64(data[i]), float64(data[i+1]), float64(data[i+2]), float64(data[i+3])),
			Class: class,
			Score: score,
		})
	}
	return nonMaxSuppression(candidates), nil
}

// nonMaxSuppression keeps the highest-score box per overlapping cluster,
// applied per class.
func nonMaxSuppression(boxes []LayoutBBox) []LayoutBBox {
	byClass := map[string][]LayoutBBox{}
	for _, b := range boxes {
		byClass[b.Class] = append(byClass[b.Class], b)
	}
	var kept []LayoutBBox
	for _, group := range byClass {
		sort.Slice(group, func(i, j int) bool { return group[i].Score > group[j].Score })
		var survivors []LayoutBBox
		suppressed := make([]bool, len(group))
		for i := range group {
			if suppressed[i] {
				continue
			}
			survivors = append(survivors, group[i])
			for j := i + 1; j < len(group); j++ {
				if suppressed[j] {
					continue
				}
				if group[i].BBox.IoU(group[j].BBox) >= IoUThreshold {
					suppressed[j] = true
				}
			}
		}
		kept = append(kept, survivors...)
	}
	return kept
}

// RescaleBoxes maps a set of detector-space boxes back to native page
// coordinates via downscaleFactor.
func RescaleBoxes(boxes []LayoutBBox, downscaleFactor float64) []LayoutBBox {
	out := make([]LayoutBBox, len(boxes))
	for i, b := range boxes {
		out[i] = LayoutBBox{BBox: b.BBox.Scale(downscaleFactor), Class: b.Class, Score: b.Score}
	}
	return out
}
