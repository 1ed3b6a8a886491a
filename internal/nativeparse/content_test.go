// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPopLIFO(t *testing.T) {
	var stk Stack
	v1 := Value{raw: int64(1)}
	v2 := Value{raw: int64(2)}

	stk.push(v1)
	stk.push(v2)
	assert.Equal(t, 2, stk.Len())

	assert.Equal(t, v2, stk.Pop())
	assert.Equal(t, v1, stk.Pop())
	assert.Equal(t, Value{}, stk.Pop())
}

func TestInterpretDispatchesOperators(t *testing.T) {
	var ops []string
	Interpret([]byte("1 2 Tm (hi) Tj"), func(stk *Stack, op string) {
		ops = append(ops, op)
		for stk.Len() > 0 {
			stk.Pop()
		}
	})
	assert.Equal(t, []string{"Tm", "Tj"}, ops)
}

func TestExtractCharsProducesAdvancingGlyphs(t *testing.T) {
	fontDict := dict{
		"BaseFont":  name("Helvetica"),
		"FirstChar": int64(32),
		"LastChar":  int64(126),
		"Widths":    array{},
	}
	resources := dict{"Font": dict{"F1": fontDict}}
	content := []byte("BT /F1 12 Tf 10 700 Td (ab) Tj ET")
	pageDict := dict{
		"Resources": resources,
		"Contents":  stream{dict: dict{}, data: content},
	}
	p := page{v: Value{raw: pageDict}}

	chars := p.ExtractChars(792)
	assert.Len(t, chars, 2)
	assert.Equal(t, 'a', chars[0].Unicode)
	assert.Equal(t, 'b', chars[1].Unicode)
	assert.Equal(t, "F1", chars[0].FontID)
	assert.Equal(t, 12.0, chars[0].FontSize)
	assert.Greater(t, chars[1].BBox.X0, chars[0].BBox.X0)
}
