// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"fmt"
	"time"
)

var traceMessages []string

// Log just adds a message to the trace log.
func Log(msg string) {
	traceMessages = append(traceMessages, msg)
}

// Flush prints the accumulated trace log and resets it.
func Flush() {
	for _, msg := range traceMessages {
		fmt.Println(msg)
	}
	// reset so the next run starts fresh
	traceMessages = nil
}

// Stage starts a named timing span (one native-parse page, one whole
// document) and returns a func that logs its elapsed duration when
// called. The native parser's span supplies Result.ParseMS; layout queue
// and inference times are measured in the layout queue itself.
func Stage(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		d := time.Since(start)
		Log(fmt.Sprintf("%s: %s", name, d))
		return d
	}
}
