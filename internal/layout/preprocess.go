// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Letterbox resizes img to fit within (w,h) preserving aspect ratio,
// padding with black, the standard pre-detector resize for a fixed-size
// model input. Grounded on golang.org/x/image/draw, the ecosystem
// pairing for go-fitz's image.Image output.
func Letterbox(img image.Image, w, h int) (image.Image, float64) {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	scale := float64(w) / float64(sw)
	if s := float64(h) / float64(sh); s < scale {
		scale = s
	}
	nw := int(float64(sw) * scale)
	nh := int(float64(sh) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	ox := (w - nw) / 2
	oy := (h - nh) / 2
	draw.CatmullRom.Scale(dst, image.Rect(ox, oy, ox+nw, oy+nh), img, b, draw.Over, nil)
	return dst, scale
}

// ToCHWFloat32 normalizes img to [0,1] and arranges it channel-first
// (C,H,W), the tensor layout the layout model expects.
func ToCHWFloat32(img image.Image) []float32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float32, 3*w*h)
	plane := w * h
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out[i] = float32(r) / 65535
			out[plane+i] = float32(g) / 65535
			out[2*plane+i] = float32(bl) / 65535
			i++
		}
	}
	return out
}
