// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package layout implements the layout inference engine and layout
// queue: an ONNX-backed detector run through a buffer-pool-backed
// asynchronous future, fed by a bounded worker pool gated by a permit
// semaphore sized to the engine's intra-op thread count.
package layout

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/sassoftware/docstruct/logger"
)

// Session wraps a shared ONNX session handle. ONNX Runtime's C API
// supports concurrent Run calls on one session given separate input/
// output tensors, which the buffer pool provides; concurrency itself is
// bounded by the layout queue's permit semaphore (queue.go), sized to
// IntraOpThreads, so Session does not serialize Run itself.
// Grounded on other_examples/.../Tejas242-sift/.../embedder.go's
// NewDynamicAdvancedSession setup.
type Session struct {
	ort    *ort.DynamicAdvancedSession
	inputW int
	inputH int
}

// EngineConfig configures ONNX Runtime initialization and the session's
// thread pools.
type EngineConfig struct {
	SharedLibraryPath string
	ModelPath         string
	InputNames        []string
	OutputNames       []string
	InputWidth        int
	InputHeight       int
	IntraOpThreads    int
	InterOpThreads    int
}

// NewSession initializes the ONNX Runtime environment and opens a
// session for the layout-detection model.
func NewSession(cfg EngineConfig) (*Session, error) {
	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", err)
	}
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if cfg.IntraOpThreads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("set intra-op threads: %w", err)
		}
	}
	if cfg.InterOpThreads > 0 {
		if err := opts.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
			return nil, fmt.Errorf("set inter-op threads: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, cfg.InputNames, cfg.OutputNames, opts)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	logger.Debug("layout: onnx session opened", true)
	return &Session{ort: sess, inputW: cfg.InputWidth, inputH: cfg.InputHeight}, nil
}

// Close releases the session handle.
func (s *Session) Close() error {
	return s.ort.Destroy()
}

// runSync invokes the session synchronously. The ONNX Go binding has no
// native async contract; Future (future.go) supplies the asynchronous
// surface by running this method on a goroutine started per inference.
func (s *Session) runSync(input *ort.Tensor[float32]) ([]LayoutBBox, error) {
	outputs := []ort.Value{nil}
	if err := s.ort.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("session run: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer out.Destroy()
	return decodeOutputs(out.GetData())
}
