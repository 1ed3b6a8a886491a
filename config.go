// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package docstruct is the document orchestrator: it drives the
// native-parse -> layout-inference -> fusion -> merge pipeline and
// assembles the final structured document.
package docstruct

import (
	"github.com/go-playground/validator/v10"

	"github.com/sassoftware/docstruct/logger"
)

// ORTConfig configures ONNX Runtime initialization and the layout
// session's thread pools.
type ORTConfig struct {
	SharedLibraryPath string `validate:"required"`
	ModelPath         string `validate:"required"`
	InputWidth        int    `validate:"min=32"`
	InputHeight       int    `validate:"min=32"`
	IntraOpThreads    int    `validate:"min=1,max=32"`
	InterOpThreads    int    `validate:"min=1,max=32"`
}

// Config is the orchestrator's top-level configuration, grounded on
// pdf-xtract's Config (validator tags, NewDefaultConfig pattern) and
// generalized to the pipeline's queue/pool sizing knobs.
type Config struct {
	MaxConcurrentDocuments int `validate:"min=1,max=10"`
	LayoutWorkers          int `validate:"min=1,max=64"`
	NativeQueueCapacity    int `validate:"min=10"`
	LayoutQueueCapacity    int `validate:"min=1"`
	BufferPoolSize         int `validate:"min=1"`
	ORT                    ORTConfig
	OCRBackend             string
	Logger                 logger.LogFunc
}

// NewDefaultConfig returns sane defaults, mirroring pdf-xtract's own
// NewDefaultConfig in config.go.
func NewDefaultConfig() *Config {
	return &Config{
		MaxConcurrentDocuments: 4,
		LayoutWorkers:          4,
		NativeQueueCapacity:    10,
		LayoutQueueCapacity:    4,
		BufferPoolSize:         4,
		ORT: ORTConfig{
			InputWidth:     1024,
			InputHeight:    1024,
			IntraOpThreads: 2,
			InterOpThreads: 1,
		},
		OCRBackend: "none",
	}
}

// Validate checks Config's invariants with go-playground/validator,
// exactly as pdf-xtract's Config.Validate does.
func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}

// ParseRequest is the per-document parse request.
type ParseRequest struct {
	Bytes      []byte
	DocName    string
	Password   string
	FlattenPDF bool
	PageRange  *PageRange
	DebugDir   string
}

// PageRange mirrors nativeparse.PageRange at the public API surface:
// half-open, Start inclusive, End exclusive, zero-indexed.
type PageRange struct {
	Start, End int
}
