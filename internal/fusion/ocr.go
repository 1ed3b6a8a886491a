// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package fusion

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/sassoftware/docstruct/entities"
	"github.com/sassoftware/docstruct/internal/nativeparse"
)

// OCRLine is one recognized line of text.
type OCRLine struct {
	Text       string
	Confidence float64
	BBox       entities.BBox
}

// Backend is the pluggable OCR contract: platform-specific recognizers
// plug in here, falling back gracefully to "not implemented" on
// platforms without a backend.
type Backend interface {
	Recognize(img image.Image, rescale float64) ([]OCRLine, error)
}

// ErrOCRNotImplemented is returned by NotImplementedBackend for a
// platform with no OCR backend wired in.
var ErrOCRNotImplemented = errors.New("ocr: not implemented on this platform")

// NotImplementedBackend is the default Backend: every call fails
// gracefully so a caller can fall back to leaving the element's text
// empty with needs_ocr=true.
type NotImplementedBackend struct{}

func (NotImplementedBackend) Recognize(image.Image, float64) ([]OCRLine, error) {
	return nil, ErrOCRNotImplemented
}

// TesseractBackend recognizes text via the gosseract/v2 binding to the
// Tesseract OCR engine, grounded on the gosseract dependency the pack's
// wudi-pdfkit and tsawler-tabula manifests carry. Languages defaults to
// Tesseract's own "eng" default when empty.
type TesseractBackend struct {
	Languages []string
}

// Recognize runs the crop through a fresh gosseract client per call: the
// client is not safe to share across concurrent fusion tasks, and its
// per-image setup cost is small next to a Tesseract recognition pass.
func (b TesseractBackend) Recognize(img image.Image, _ float64) ([]OCRLine, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("ocr: encode crop: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	if len(b.Languages) > 0 {
		if err := client.SetLanguage(b.Languages...); err != nil {
			return nil, fmt.Errorf("ocr: set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("ocr: set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("ocr: bounding boxes: %w", err)
	}
	lines := make([]OCRLine, 0, len(boxes))
	for _, bb := range boxes {
		if bb.Word == "" {
			continue
		}
		lines = append(lines, OCRLine{
			Text:       bb.Word,
			Confidence: bb.Confidence,
			BBox: entities.NewBBox(
				float64(bb.Box.Min.X), float64(bb.Box.Min.Y),
				float64(bb.Box.Max.X), float64(bb.Box.Max.Y),
			),
		})
	}
	return lines, nil
}

// ocrFallback crops the box's region out of the page's full-resolution
// image (grounded on other_examples/.../MeKo-Christian-pogo/.../
// processor.go's disintegration/imaging crop usage) and runs it through
// backend, converting results into synthetic Lines with rotation=0 and a
// font size derived from line height.
func ocrFallback(backend Backend, native nativeparse.Result, box entities.BBox) ([]entities.Line, error) {
	if backend == nil {
		return nil, ErrOCRNotImplemented
	}
	if native.ImageNative == nil {
		return nil, errors.New("ocr: no rendered page image available")
	}
	crop := imaging.Crop(native.ImageNative, image.Rect(int(box.X0), int(box.Y0), int(box.X1), int(box.Y1)))

	ocrLines, err := backend.Recognize(crop, native.DownscaleFactor)
	if err != nil {
		return nil, err
	}
	lines := make([]entities.Line, 0, len(ocrLines))
	for _, ol := range ocrLines {
		// ol.BBox is local to the crop; translate back into page space.
		bbox := entities.NewBBox(box.X0+ol.BBox.X0, box.Y0+ol.BBox.Y0, box.X0+ol.BBox.X1, box.Y0+ol.BBox.Y1)
		fontSize := bbox.Height()
		span := entities.CharSpan{Text: ol.Text, FontID: "ocr", FontSize: fontSize, BBox: bbox}
		lines = append(lines, entities.NewLine(span))
	}
	return lines, nil
}
