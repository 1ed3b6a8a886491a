// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package docstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validORT() ORTConfig {
	return ORTConfig{
		SharedLibraryPath: "/usr/lib/libonnxruntime.so",
		ModelPath:         "/models/layout.onnx",
		InputWidth:        1024,
		InputHeight:       1024,
		IntraOpThreads:    2,
		InterOpThreads:    1,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "valid config",
			cfg: &Config{
				MaxConcurrentDocuments: 4,
				LayoutWorkers:          4,
				NativeQueueCapacity:    10,
				LayoutQueueCapacity:    4,
				BufferPoolSize:         4,
				ORT:                    validORT(),
			},
			shouldErr: false,
		},
		{
			name: "native queue capacity below required minimum",
			cfg: &Config{
				MaxConcurrentDocuments: 4,
				LayoutWorkers:          4,
				NativeQueueCapacity:    5,
				LayoutQueueCapacity:    4,
				BufferPoolSize:         4,
				ORT:                    validORT(),
			},
			shouldErr: true,
		},
		{
			name: "missing model path",
			cfg: &Config{
				MaxConcurrentDocuments: 4,
				LayoutWorkers:          4,
				NativeQueueCapacity:    10,
				LayoutQueueCapacity:    4,
				BufferPoolSize:         4,
				ORT: ORTConfig{
					SharedLibraryPath: "/usr/lib/libonnxruntime.so",
					InputWidth:        1024,
					InputHeight:       1024,
					IntraOpThreads:    2,
					InterOpThreads:    1,
				},
			},
			shouldErr: true,
		},
		{
			name:      "default config is valid modulo required paths",
			cfg:       withModelPaths(NewDefaultConfig()),
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func withModelPaths(cfg *Config) *Config {
	cfg.ORT.SharedLibraryPath = "/usr/lib/libonnxruntime.so"
	cfg.ORT.ModelPath = "/models/layout.onnx"
	return cfg
}
