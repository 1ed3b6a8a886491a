// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"context"
	"image"

	"github.com/sassoftware/docstruct/logger"
)

// Future is an asynchronous inference handle. The ONNX Go binding's Run
// is synchronous, so Future is completed by a goroutine that InferAsync
// starts for each inference: a closed Go channel plays the role of
// a {Pending, Ready} state machine, since closing a channel is itself
// a "store a value, wake every waiter exactly once" operation, and it is
// safe to read from after a receiver has already stopped waiting.
type Future struct {
	done   chan struct{}
	result []LayoutBBox
	err    error
}

// InferAsync preprocesses img into a pooled tensor and runs the session
// on a new goroutine, returning a Future immediately.
func InferAsync(sess *Session, pool *BufferPool, img image.Image) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		t := pool.Get()
		defer pool.Put(t) // returned in the completion path, not on drop

		data := ToCHWFloat32(img)
		dst := t.GetData()
		n := len(data)
		if len(dst) < n {
			n = len(dst)
		}
		copy(dst[:n], data[:n])

		boxes, err := sess.runSync(t)
		f.result = boxes
		f.err = err
	}()
	return f
}

// Await blocks until the future completes or ctx is done. If ctx is
// canceled first, Await returns ctx.Err() immediately; the goroutine
// started by InferAsync keeps running to completion and its buffer-pool
// tensor is still returned.
func (f *Future) Await(ctx context.Context) ([]LayoutBBox, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		logger.Debug("layout: future await canceled, inference left running", true)
		return nil, ctx.Err()
	}
}

// TryTake reports whether the future has completed without blocking.
func (f *Future) TryTake() (result []LayoutBBox, err error, ready bool) {
	select {
	case <-f.done:
		return f.result, f.err, true
	default:
		return nil, nil, false
	}
}
