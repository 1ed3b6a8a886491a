// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderer rasterizes pages at two scales using go-fitz/MuPDF, an
// external renderer treated as an out-of-scope collaborator. The
// object-model walker in content.go/value.go/reader.go
// supplies the glyph geometry go-fitz's own Text() API does not expose
// (see DESIGN.md).
type renderer struct {
	doc *fitz.Document
}

func newRenderer(data []byte) (*renderer, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open renderer: %w", err)
	}
	return &renderer{doc: doc}, nil
}

func (r *renderer) numPage() int { return r.doc.NumPage() }

func (r *renderer) close() error { return r.doc.Close() }

// bounds returns a page's width/height in points.
func (r *renderer) bounds(pageIdx int) (w, h float64, err error) {
	rect, err := r.doc.Bound(pageIdx)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// renderTwoScales renders pageIdx at 1x (output scale) and at the
// detector's required dimensions. dpi72 renders at native point resolution; the
// detector image is produced by rendering at dpi derived from rescale
// and then used as-is (the caller applies downscale_factor bookkeeping).
func (r *renderer) renderTwoScales(pageIdx int, rescale float64) (native, detector image.Image, err error) {
	native, err = r.doc.ImageDPI(pageIdx, 72)
	if err != nil {
		return nil, nil, fmt.Errorf("render native scale: %w", err)
	}
	detectorDPI := 72 * rescale
	if detectorDPI <= 0 {
		detectorDPI = 72
	}
	detector, err = r.doc.ImageDPI(pageIdx, detectorDPI)
	if err != nil {
		return nil, nil, fmt.Errorf("render detector scale: %w", err)
	}
	return native, detector, nil
}
