// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import (
	"math"
	"strings"
)

// Span-break thresholds: a character joins the current span iff font
// identity matches, size differs by less than FontSizeTolerance, and the
// vertical shift is below LineShiftFraction of the line height.
const (
	FontSizeTolerance = 0.5
	LineShiftFraction = 0.25
)

// Char is a single decoded glyph emitted by the native page parser,
// carrying unicode, font identity, size, bbox, and rotation.
type Char struct {
	Unicode  rune
	FontID   string
	FontSize float64
	BBox     BBox
	Rotation float64
}

// CharSpan is a contiguous run of characters sharing font, size, and
// baseline.
type CharSpan struct {
	Text     string
	FontID   string
	FontSize float64
	BBox     BBox
}

// NewCharSpan starts a new span from a single character.
func NewCharSpan(c Char) CharSpan {
	return CharSpan{
		Text:     string(c.Unicode),
		FontID:   c.FontID,
		FontSize: c.FontSize,
		BBox:     c.BBox,
	}
}

// CanAppend reports whether c continues the span: same font identity,
// size within FontSizeTolerance, and a vertical shift below
// LineShiftFraction of the font size. The horizontal distance between c
// and the span's box is not checked.
func (s CharSpan) CanAppend(c Char) bool {
	if c.FontID != s.FontID {
		return false
	}
	if math.Abs(c.FontSize-s.FontSize) >= FontSizeTolerance {
		return false
	}
	lineHeight := math.Max(s.FontSize, 1)
	shift := math.Abs(c.BBox.CenterY() - s.BBox.CenterY())
	return shift < LineShiftFraction*lineHeight
}

// Append grows the span with c, merging geometry and concatenating text.
// Callers must check CanAppend first.
func (s CharSpan) Append(c Char) CharSpan {
	s.Text += string(c.Unicode)
	s.BBox = s.BBox.Merge(c.BBox)
	return s
}

// BuildSpans groups a run of characters (already in reading order for a
// single line candidate) into spans, splitting wherever CanAppend fails.
// Grounded on pdf-xtract's per-run font/position tracking in its
// walkTextBlocks helper, generalized here to per-character granularity.
func BuildSpans(chars []Char) []CharSpan {
	var spans []CharSpan
	for _, c := range chars {
		if len(spans) > 0 && spans[len(spans)-1].CanAppend(c) {
			spans[len(spans)-1] = spans[len(spans)-1].Append(c)
			continue
		}
		spans = append(spans, NewCharSpan(c))
	}
	return spans
}

// LineGapThreshold bounds the horizontal gap, in multiples of the span's
// font size, tolerated between a line and the next span appended to it.
const LineGapThreshold = 3.0

// Line is an ordered sequence of spans sharing a baseline within
// tolerance.
type Line struct {
	Spans []CharSpan
	BBox  BBox
}

// NewLine starts a line from a single span.
func NewLine(s CharSpan) Line {
	return Line{Spans: []CharSpan{s}, BBox: s.BBox}
}

// midpoint returns the line's current vertical midpoint.
func (l Line) midpoint() float64 { return l.BBox.CenterY() }

// CanAppend reports whether span continues l: its vertical midpoint lies
// within ε·line_height of the line's midpoint and the horizontal gap from
// the line's trailing edge is below threshold.
func (l Line) CanAppend(s CharSpan) bool {
	lineHeight := math.Max(l.BBox.Height(), 1)
	if math.Abs(s.BBox.CenterY()-l.midpoint()) > LineShiftFraction*lineHeight {
		return false
	}
	gap := s.BBox.X0 - l.BBox.X1
	return gap < LineGapThreshold*math.Max(s.FontSize, 1)
}

// Append grows the line with span. Callers must check CanAppend first.
func (l Line) Append(s CharSpan) Line {
	l.Spans = append(l.Spans, s)
	l.BBox = l.BBox.Merge(s.BBox)
	return l
}

// BuildLines groups spans (already in reading order) into lines,
// splitting wherever CanAppend fails.
func BuildLines(spans []CharSpan) []Line {
	var lines []Line
	for _, s := range spans {
		if len(lines) > 0 && lines[len(lines)-1].CanAppend(s) {
			lines[len(lines)-1] = lines[len(lines)-1].Append(s)
			continue
		}
		lines = append(lines, NewLine(s))
	}
	return lines
}

// Text returns the line's spans concatenated, the rule used when
// building an Element's text from its matched lines.
func (l Line) Text() string {
	parts := make([]string, len(l.Spans))
	for i, s := range l.Spans {
		parts[i] = s.Text
	}
	return strings.Join(parts, "")
}

// MeanFontSize averages the font size of the line's spans, weighted by
// rune count, used for Element font statistics.
func (l Line) MeanFontSize() float64 {
	if len(l.Spans) == 0 {
		return 0
	}
	var total, weight float64
	for _, s := range l.Spans {
		n := float64(len([]rune(s.Text)))
		if n == 0 {
			n = 1
		}
		total += s.FontSize * n
		weight += n
	}
	if weight == 0 {
		return 0
	}
	return total / weight
}
