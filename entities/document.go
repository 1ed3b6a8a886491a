// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import "time"

// DocumentMetadata carries document-level fields beyond the page/block
// tree. ParsingDuration is kept
// alongside the Info-dict fields the native parser can recover from the
// PDF trailer, the same fields pdf-xtract's metadata.go extracted.
type DocumentMetadata struct {
	ParsingDuration time.Duration
	Title           string
	Author          string
	PageCount       int
}

// ParsedDocument is the final pipeline output. Pages are
// ordered by id; blocks are ordered by reading order.
type ParsedDocument struct {
	DocName  string
	Pages    []StructuredPage
	Blocks   []Block
	Metadata DocumentMetadata
}
