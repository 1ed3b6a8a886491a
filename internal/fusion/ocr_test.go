// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package fusion

import (
	"image"
	"image/color"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTesseractBackendRecognize requires a real Tesseract install (the
// gosseract binding links against libtesseract at build time and shells
// out to its data files at run time), so it is skipped unless a
// `tesseract` binary is on PATH.
func TestTesseractBackendRecognize(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not on PATH; skipping gosseract-backed test")
	}

	img := image.NewRGBA(image.Rect(0, 0, 200, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}

	backend := TesseractBackend{}
	lines, err := backend.Recognize(img, 1.0)
	require.NoError(t, err)
	_ = lines // a blank image legitimately yields zero recognized lines
}
