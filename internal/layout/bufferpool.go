// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// BufferPool is a fixed-size set of reusable input tensors, backed by
// sync.Mutex + sync.Cond rather than a channel so that Get blocks
// without imposing FIFO ordering on waiters.
type BufferPool struct {
	mu    sync.Mutex
	cond  *sync.Cond
	free  []*ort.Tensor[float32]
	shape ort.Shape
}

// NewBufferPool preallocates size tensors of the given shape.
func NewBufferPool(size int, shape ort.Shape) (*BufferPool, error) {
	p := &BufferPool{shape: shape}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < size; i++ {
		t, err := ort.NewEmptyTensor[float32](shape)
		if err != nil {
			return nil, err
		}
		p.free = append(p.free, t)
	}
	return p, nil
}

// Get acquires one tensor, blocking (with condition-variable signaling)
// while the pool is empty.
func (p *BufferPool) Get() *ort.Tensor[float32] {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.free) == 0 {
		p.cond.Wait()
	}
	n := len(p.free) - 1
	t := p.free[n]
	p.free = p.free[:n]
	return t
}

// Put returns a tensor to the pool. It is called from the inference
// completion path, not on future drop, so capacity tracks in-flight
// inferences exactly.
func (p *BufferPool) Put(t *ort.Tensor[float32]) {
	p.mu.Lock()
	p.free = append(p.free, t)
	p.mu.Unlock()
	p.cond.Signal()
}

// Close destroys every pooled tensor.
func (p *BufferPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.free {
		t.Destroy()
	}
	p.free = nil
}
