// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatPageTree(n int) dict {
	kids := make(array, n)
	for i := 0; i < n; i++ {
		kids[i] = dict{"Type": name("Page"), "Contents": stream{dict: dict{}, data: nil}}
	}
	return dict{
		"Type":  name("Catalog"),
		"Pages": dict{"Type": name("Pages"), "Count": int64(n), "Kids": kids},
	}
}

func TestDocumentPageFlatTree(t *testing.T) {
	doc := &Document{trailer: dict{"Root": flatPageTree(10)}}

	for want := 1; want <= 10; want++ {
		p := doc.Page(want)
		assert.NotNil(t, p.v.raw, "page %d should resolve", want)
	}
}

func TestDocumentPageNestedTree(t *testing.T) {
	leftKid := dict{"Type": name("Page"), "Contents": stream{dict: dict{}, data: nil}}
	rightKids := array{
		dict{"Type": name("Page"), "Contents": stream{dict: dict{}, data: nil}},
		dict{"Type": name("Page"), "Contents": stream{dict: dict{}, data: nil}},
	}
	root := dict{
		"Type": name("Pages"),
		"Count": int64(3),
		"Kids": array{
			dict{"Type": name("Pages"), "Count": int64(1), "Kids": array{leftKid}},
			dict{"Type": name("Pages"), "Count": int64(2), "Kids": rightKids},
		},
	}
	doc := &Document{trailer: dict{"Root": dict{"Pages": root}}}

	p1 := doc.Page(1)
	assert.Equal(t, leftKid, p1.v.raw)

	p3 := doc.Page(3)
	assert.Equal(t, rightKids[1], p3.v.raw)
}

func TestDocumentPageOutOfRange(t *testing.T) {
	doc := &Document{trailer: dict{"Root": flatPageTree(2)}}
	p := doc.Page(5)
	assert.Nil(t, p.v.raw)
}

func TestHalfOpenPageRangeSelectsExpectedPages(t *testing.T) {
	total := 10
	pr := PageRange{Start: 2, End: 7}
	var selected []int
	for i := pr.Start; i < pr.End; i++ {
		selected = append(selected, i)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, selected)
	assert.LessOrEqual(t, pr.End, total)
}
