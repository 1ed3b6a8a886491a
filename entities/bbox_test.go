// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBBoxMergeIdempotent(t *testing.T) {
	b := NewBBox(1, 2, 10, 12)
	assert.Equal(t, b, b.Merge(b))
}

func TestBBoxScaleIdentityAndInverse(t *testing.T) {
	b := NewBBox(1, 2, 10, 12)
	assert.Equal(t, b, b.Scale(1))

	scaled := b.Scale(2).Scale(0.5)
	assert.InDelta(t, b.X0, scaled.X0, 1e-9)
	assert.InDelta(t, b.Y0, scaled.Y0, 1e-9)
	assert.InDelta(t, b.X1, scaled.X1, 1e-9)
	assert.InDelta(t, b.Y1, scaled.Y1, 1e-9)
}

func TestBBoxIoU(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 15, 15)
	assert.InDelta(t, 25.0/175.0, a.IoU(b), 1e-9)

	disjoint := NewBBox(100, 100, 110, 110)
	assert.Equal(t, 0.0, a.IoU(disjoint))
}

func TestBBoxContainsPoint(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)
	assert.True(t, b.ContainsPoint(5, 5))
	assert.False(t, b.ContainsPoint(15, 5))
}

func TestBBoxValid(t *testing.T) {
	assert.True(t, NewBBox(0, 0, 1, 1).Valid())
	assert.False(t, BBox{X0: -1, Y0: 0, X1: 1, Y1: 1}.Valid())
}
