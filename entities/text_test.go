// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func charAt(r rune, x0 float64, fontSize float64) Char {
	return Char{
		Unicode:  r,
		FontID:   "F1",
		FontSize: fontSize,
		BBox:     NewBBox(x0, 0, x0+fontSize*0.6, fontSize),
	}
}

func TestBuildSpansSameFontJoins(t *testing.T) {
	chars := []Char{charAt('h', 0, 12), charAt('i', 7, 12)}
	spans := BuildSpans(chars)
	assert.Len(t, spans, 1)
	assert.Equal(t, "hi", spans[0].Text)
}

func TestBuildSpansFontChangeSplits(t *testing.T) {
	a := charAt('a', 0, 12)
	b := charAt('b', 7, 12)
	b.FontID = "F2"
	spans := BuildSpans([]Char{a, b})
	assert.Len(t, spans, 2)
}

func TestBuildSpansSizeChangeSplits(t *testing.T) {
	a := charAt('a', 0, 12)
	b := charAt('b', 7, 13)
	spans := BuildSpans([]Char{a, b})
	assert.Len(t, spans, 2)
}

func TestBuildLinesGroupsByBaseline(t *testing.T) {
	s1 := NewCharSpan(charAt('a', 0, 12))
	s2 := NewCharSpan(charAt('b', 10, 12))
	lines := BuildLines([]CharSpan{s1, s2})
	assert.Len(t, lines, 1)
	assert.Equal(t, "ab", lines[0].Text())
}

func TestBuildLinesVerticalShiftSplits(t *testing.T) {
	s1 := NewCharSpan(charAt('a', 0, 12))
	s2 := NewCharSpan(charAt('b', 10, 12))
	s2.BBox = s2.BBox.Merge(NewBBox(s2.BBox.X0, s2.BBox.Y0+100, s2.BBox.X1, s2.BBox.Y1+100))
	lines := BuildLines([]CharSpan{s1, s2})
	assert.Len(t, lines, 2)
}
