// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexerTokensIntNameString(t *testing.T) {
	lx := newLexer([]byte("123 /Name (hello) "))
	assert.Equal(t, int64(123), lx.next())
	assert.Equal(t, name("Name"), lx.next())
	assert.Equal(t, "hello", lx.next())
}

func TestLexerDict(t *testing.T) {
	lx := newLexer([]byte("<< /Type /Page /Count 3 >>"))
	v := parseValue(lx)
	d, ok := v.(dict)
	assert.True(t, ok)
	assert.Equal(t, name("Page"), d["Type"])
	assert.Equal(t, int64(3), d["Count"])
}

func TestLexerReference(t *testing.T) {
	lx := newLexer([]byte("12 0 R"))
	v := parseValue(lx)
	ref, ok := v.(reference)
	assert.True(t, ok)
	assert.Equal(t, uint32(12), ref.id)
}

func TestLexerArray(t *testing.T) {
	lx := newLexer([]byte("[1 2 3]"))
	v := parseValue(lx)
	a, ok := v.(array)
	assert.True(t, ok)
	assert.Len(t, a, 3)
}
