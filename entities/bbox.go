// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package entities holds the data model shared by every stage of the
// document-structuring pipeline: geometry, text primitives, fused
// elements, stitched blocks, and the final document.
package entities

import "math"

// BBox is an axis-aligned rectangle in page-space points, x0 < x1 and
// y0 < y1. Coordinates are kept finite and nonnegative.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// NewBBox builds a BBox from raw corners, normalizing so that X0<X1 and
// Y0<Y1.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns X1-X0.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns Y1-Y0.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Area returns width*height, zero for a degenerate box.
func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CenterX returns the horizontal midpoint.
func (b BBox) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical midpoint.
func (b BBox) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// Merge returns the smallest rectangle enclosing both boxes.
func (b BBox) Merge(o BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// IntersectArea returns the area of the overlap between b and o, zero if
// disjoint.
func (b BBox) IntersectArea(o BBox) float64 {
	x0 := math.Max(b.X0, o.X0)
	y0 := math.Max(b.Y0, o.Y0)
	x1 := math.Min(b.X1, o.X1)
	y1 := math.Min(b.Y1, o.Y1)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

// ContainsPoint reports whether (x,y) lies within b, inclusive of edges.
func (b BBox) ContainsPoint(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// IoU returns the intersection-over-union of b and o.
func (b BBox) IoU(o BBox) float64 {
	inter := b.IntersectArea(o)
	if inter == 0 {
		return 0
	}
	union := b.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Scale multiplies every coordinate by factor. Scale is the operation
// used to map between detector-scale and native page-space coordinates
// via the downscale factor.
func (b BBox) Scale(factor float64) BBox {
	return BBox{
		X0: b.X0 * factor,
		Y0: b.Y0 * factor,
		X1: b.X1 * factor,
		Y1: b.Y1 * factor,
	}
}

// Valid reports whether b's coordinates are finite, nonnegative, and
// properly ordered, the invariant every BBox in the pipeline must hold.
func (b BBox) Valid() bool {
	for _, v := range []float64{b.X0, b.Y0, b.X1, b.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return b.X0 <= b.X1 && b.Y0 <= b.Y1
}
