// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterboxPreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		for y := 0; y < 100; y++ {
			src.Set(x, y, color.White)
		}
	}
	dst, scale := Letterbox(src, 640, 640)
	assert.Equal(t, 640, dst.Bounds().Dx())
	assert.Equal(t, 640, dst.Bounds().Dy())
	assert.InDelta(t, 3.2, scale, 1e-9)
}

func TestToCHWFloat32Length(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	data := ToCHWFloat32(src)
	assert.Len(t, data, 3*4*4)
}
