// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package merge

import (
	"math"
	"sort"

	"github.com/sassoftware/docstruct/entities"
)

// MaxTitleLevels is the upper bound on k-means clusters.
const MaxTitleLevels = 6

// KMeansLevels runs 1-D k-means over the font sizes of Title/Subtitle
// elements and returns a mapping from each distinct (rounded) font size
// to a level in 1..K, level 1 assigned to the largest centroid. K is adaptively reduced to the count of distinct sizes when
// fewer than MaxTitleLevels are present; an empty title set returns an empty mapping.
func KMeansLevels(titleElements []entities.Element) map[float64]int {
	sizes := distinctSizes(titleElements)
	if len(sizes) == 0 {
		return map[float64]int{}
	}
	k := MaxTitleLevels
	if len(sizes) < k {
		k = len(sizes)
	}
	centroids := initCentroids(sizes, k)

	assign := make([]int, len(sizes))
	for iter := 0; iter < 50; iter++ {
		changed := false
		for i, s := range sizes {
			best, bestDist := 0, math.MaxFloat64
			for c, centroid := range centroids {
				d := math.Abs(s - centroid)
				if d < bestDist {
					bestDist, best = d, c
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		centroids = recomputeCentroids(sizes, assign, k, centroids)
		if !changed {
			break
		}
	}

	// Level 1 = largest centroid; ties broken by original index.
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return centroids[order[i]] > centroids[order[j]] })
	levelOf := make(map[int]int, k)
	for level, clusterIdx := range order {
		levelOf[clusterIdx] = level + 1
	}

	out := make(map[float64]int, len(sizes))
	for i, s := range sizes {
		out[s] = levelOf[assign[i]]
	}
	return out
}

func distinctSizes(elements []entities.Element) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, el := range elements {
		s := bucketFontSize(el.TextBlock.MeanFontSize)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Float64s(out)
	return out
}

// initCentroids seeds k evenly-spaced quantiles of sizes.
func initCentroids(sizes []float64, k int) []float64 {
	centroids := make([]float64, k)
	n := len(sizes)
	for i := 0; i < k; i++ {
		idx := (i * (n - 1)) / maxInt(k-1, 1)
		centroids[i] = sizes[idx]
	}
	return centroids
}

func recomputeCentroids(sizes []float64, assign []int, k int, prev []float64) []float64 {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, s := range sizes {
		c := assign[i]
		sums[c] += s
		counts[c]++
	}
	out := make([]float64, k)
	for i := range out {
		if counts[i] == 0 {
			out[i] = prev[i]
			continue
		}
		out[i] = sums[i] / float64(counts[i])
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
