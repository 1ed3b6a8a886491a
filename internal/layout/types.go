// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import "github.com/sassoftware/docstruct/entities"

// LayoutBBox is one decoded detection, in the native page's coordinate space.
type LayoutBBox struct {
	BBox  entities.BBox
	Class string
	Score float64
}

// Score and NMS IoU thresholds applied during postprocessing. One pair
// applies to every class; there are no per-class values. NMS itself is
// run separately within each class.
var (
	ScoreThreshold = 0.25
	IoUThreshold   = 0.45
)

// classNames maps the model's output class index to its label, matching
// the class vocabulary entities.LayoutClassToKind consumes.
var classNames = []string{
	"Title", "Section-header", "Text", "Paragraph", "List-item",
	"Page-header", "Page-footer", "Picture", "Figure", "Table", "Caption",
}

func classNameFor(idx int) string {
	if idx < 0 || idx >= len(classNames) {
		return "Text"
	}
	return classNames[idx]
}
