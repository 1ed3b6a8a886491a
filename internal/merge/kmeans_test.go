// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sassoftware/docstruct/entities"
)

func titleEl(size float64) entities.Element {
	return entities.Element{Kind: entities.KindTitle, TextBlock: entities.TextBlock{MeanFontSize: size}}
}

func TestKMeansLevelsThreeSizes(t *testing.T) {
	elements := []entities.Element{titleEl(24), titleEl(18), titleEl(14)}
	levels := KMeansLevels(elements)
	assert.Equal(t, 1, levels[24])
	assert.Equal(t, 2, levels[18])
	assert.Equal(t, 3, levels[14])
}

func TestKMeansLevelsEmptyInput(t *testing.T) {
	levels := KMeansLevels(nil)
	assert.Empty(t, levels)
}

func TestKMeansLevelsBoundedByK(t *testing.T) {
	var elements []entities.Element
	for i := 0; i < 20; i++ {
		elements = append(elements, titleEl(float64(8+i)))
	}
	levels := KMeansLevels(elements)
	max := 0
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	assert.LessOrEqual(t, max, MaxTitleLevels)
}
