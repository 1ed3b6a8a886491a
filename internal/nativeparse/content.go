// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"github.com/sassoftware/docstruct/entities"
)

// Stack is the content-stream operand stack the interpreter pushes
// values onto between operators, mirroring pdf-xtract's Stack used
// by page.go's Interpret callers.
type Stack struct {
	vals []Value
}

// Len returns the number of operands currently pushed.
func (s *Stack) Len() int { return len(s.vals) }

// push appends an operand.
func (s *Stack) push(v Value) { s.vals = append(s.vals, v) }

// Pop removes and returns the top operand.
func (s *Stack) Pop() Value {
	if len(s.vals) == 0 {
		return Value{}
	}
	v := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return v
}

// matrix is a 2-D affine transform in row-major PDF convention, copied
// from pdf-xtract's matrix type in page.go.
type matrix [3][3]float64

var identMatrix = matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func (x matrix) mul(y matrix) matrix {
	var z matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				z[i][j] += x[i][k] * y[k][j]
			}
		}
	}
	return z
}

// Interpret tokenizes a content stream and dispatches each operator to
// fn with the accumulated operand stack, matching pdf-xtract's own
// Interpret(strm, func(stk *Stack, op string){...}) calling convention
// used throughout page.go.
func Interpret(data []byte, fn func(stk *Stack, op string)) {
	lx := newLexer(data)
	stk := &Stack{}
	doc := (*Document)(nil)
	for {
		lx.skipWhitespace()
		if lx.pos >= len(lx.buf) {
			return
		}
		c := lx.buf[lx.pos]
		if c == '/' || c == '(' || c == '<' || c == '[' {
			stk.push(Value{doc: doc, raw: parseValue(lx)})
			continue
		}
		tok := lx.next()
		switch t := tok.(type) {
		case nil:
			return
		case int64:
			stk.push(Value{raw: t})
		case float64:
			stk.push(Value{raw: t})
		case keyword:
			switch t {
			case "true":
				stk.push(Value{raw: true})
			case "false":
				stk.push(Value{raw: false})
			case "BI":
				skipInlineImage(lx)
			default:
				fn(stk, string(t))
				stk.vals = nil
			}
		}
	}
}

// skipInlineImage discards a BI...ID...EI inline-image block; layout
// detection and OCR handle image regions, so the content-stream walker
// only needs to not choke on them.
func skipInlineImage(lx *lexer) {
	idx := indexKeyword(lx.buf[lx.pos:], "EI")
	if idx < 0 {
		lx.pos = len(lx.buf)
		return
	}
	lx.pos += idx + 2
}

func indexKeyword(buf []byte, kw string) int {
	for i := 0; i+len(kw) <= len(buf); i++ {
		if string(buf[i:i+len(kw)]) == kw {
			return i
		}
	}
	return -1
}

// gstate is the text-positioning graphics state the glyph walker tracks:
// font, size, text matrix, and CTM. Grounded on pdf-xtract's gstate in
// page.go.
type gstate struct {
	Tc  float64
	Tfs float64
	Th  float64
	Trise float64
	Tf  font
	Tm  matrix
	Tlm matrix
	CTM matrix
}

// ExtractChars walks a page's content stream and emits one entities.Char
// per shown glyph, with bbox/font_id/font_size computed from the text
// and transform matrices the way pdf-xtract's Page.Content() computes
// its per-run Text{X,Y,W}, generalized here to per-character Trm
// evaluation so span/line grouping (entities.BuildSpans/BuildLines) has
// the geometry it needs. pageH flips the glyph's y from PDF user space
// (origin bottom-left, y up) into the top-down page space every other
// bbox consumer (rendered images, layout boxes, merge.go's page-edge
// banding) already assumes.
func (p page) ExtractChars(pageH float64) []entities.Char {
	data := p.Contents()
	if data == nil {
		return nil
	}
	fonts := map[string]font{}
	fontKeys := p.Resources().Key("Font").Keys()
	for _, k := range fontKeys {
		fonts[k] = p.Font(k)
	}

	var chars []entities.Char
	g := gstate{Th: 1, Tm: identMatrix, Tlm: identMatrix, CTM: identMatrix}
	var gstack []gstate

	showText := func(raw string) {
		for i := 0; i < len(raw); i++ {
			code := int(raw[i])
			w0 := g.Tf.width(code)
			trm := matrix{{g.Tfs * g.Th, 0, 0}, {0, g.Tfs, 0}, {0, g.Trise, 1}}.mul(g.Tm).mul(g.CTM)
			x, yUp := trm[2][0], trm[2][1]
			w := w0 / 1000 * g.Tfs * g.Th
			h := g.Tfs
			if h <= 0 {
				h = 1
			}
			y := pageH - yUp - h
			chars = append(chars, entities.Char{
				Unicode:  rune(code),
				FontID:   g.Tf.id,
				FontSize: g.Tfs,
				BBox:     entities.NewBBox(x, y, x+w, y+h),
			})
			tx := (w0/1000*g.Tfs + g.Tc) * g.Th
			g.Tm = matrix{{1, 0, 0}, {0, 1, 0}, {tx, 0, 1}}.mul(g.Tm)
		}
	}

	Interpret(data, func(stk *Stack, op string) {
		n := stk.Len()
		args := make([]Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		switch op {
		case "q":
			gstack = append(gstack, g)
		case "Q":
			if len(gstack) > 0 {
				g = gstack[len(gstack)-1]
				gstack = gstack[:len(gstack)-1]
			}
		case "cm":
			if len(args) == 6 {
				m := matrix{
					{args[0].Float64(), args[1].Float64(), 0},
					{args[2].Float64(), args[3].Float64(), 0},
					{args[4].Float64(), args[5].Float64(), 1},
				}
				g.CTM = m.mul(g.CTM)
			}
		case "BT":
			g.Tm = identMatrix
			g.Tlm = identMatrix
		case "Tf":
			if len(args) == 2 {
				if f, ok := fonts[args[0].Name()]; ok {
					g.Tf = f
				}
				g.Tfs = args[1].Float64()
			}
		case "Tc":
			if len(args) == 1 {
				g.Tc = args[0].Float64()
			}
		case "Tz":
			if len(args) == 1 {
				g.Th = args[0].Float64() / 100
			}
		case "Ts":
			if len(args) == 1 {
				g.Trise = args[0].Float64()
			}
		case "Td", "TD":
			if len(args) == 2 {
				m := matrix{{1, 0, 0}, {0, 1, 0}, {args[0].Float64(), args[1].Float64(), 1}}
				g.Tlm = m.mul(g.Tlm)
				g.Tm = g.Tlm
			}
		case "Tm":
			if len(args) == 6 {
				g.Tlm = matrix{
					{args[0].Float64(), args[1].Float64(), 0},
					{args[2].Float64(), args[3].Float64(), 0},
					{args[4].Float64(), args[5].Float64(), 1},
				}
				g.Tm = g.Tlm
			}
		case "T*":
			m := matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
			g.Tlm = m.mul(g.Tlm)
			g.Tm = g.Tlm
		case "Tj":
			if len(args) == 1 {
				showText(args[0].RawString())
			}
		case "'":
			if len(args) == 1 {
				m := matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
				g.Tlm = m.mul(g.Tlm)
				g.Tm = g.Tlm
				showText(args[0].RawString())
			}
		case "\"":
			if len(args) == 3 {
				showText(args[2].RawString())
			}
		case "TJ":
			if len(args) == 1 {
				v := args[0]
				for i := 0; i < v.Len(); i++ {
					x := v.Index(i)
					if x.Kind() == String {
						showText(x.RawString())
					} else {
						adj := x.Float64()
						tx := -adj / 1000 * g.Tfs * g.Th
						g.Tm = matrix{{1, 0, 0}, {0, 1, 0}, {tx, 0, 1}}.mul(g.Tm)
					}
				}
			}
		}
	})
	return chars
}
