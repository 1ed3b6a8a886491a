// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

import "image"

// StructuredPage is produced once per page by fusion and is immutable
// thereafter.
type StructuredPage struct {
	ID       int
	Width    float64
	Height   float64
	Elements []Element
	Image    image.Image // output-scale rendered page, shared read-only
	NeedsOCR bool
}
