// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sassoftware/docstruct/entities"
)

func TestDecodeOutputsThresholdsAndSuppresses(t *testing.T) {
	defer func(s, i float64) { ScoreThreshold, IoUThreshold = s, i }(ScoreThreshold, IoUThreshold)
	ScoreThreshold = 0.3
	IoUThreshold = 0.5

	data := []float32{
		0, 0, 10, 10, 0.9, 0, // Title box, high score
		1, 1, 11, 11, 0.8, 0, // near-duplicate Title box, should be suppressed
		50, 50, 60, 60, 0.1, 0, // below threshold
		0, 0, 10, 10, 0.95, 2, // Text class box
	}
	boxes, err := decodeOutputs(data)
	assert.NoError(t, err)
	assert.Len(t, boxes, 2)
}

func TestRescaleBoxes(t *testing.T) {
	boxes := []LayoutBBox{{BBox: entities.NewBBox(0, 0, 10, 10), Class: "Text", Score: 0.5}}
	out := RescaleBoxes(boxes, 2)
	assert.Equal(t, 20.0, out[0].BBox.X1)
}
