// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package entities

// ElementKind is the fused-element vocabulary produced by page fusion.
type ElementKind string

const (
	KindTitle    ElementKind = "Title"
	KindSubtitle ElementKind = "Subtitle"
	KindHeader   ElementKind = "Header"
	KindFooter   ElementKind = "Footer"
	KindText     ElementKind = "Text"
	KindListItem ElementKind = "ListItem"
	KindCaption  ElementKind = "Caption"
	KindImage    ElementKind = "Image"
	KindTable    ElementKind = "Table"
)

// LayoutClassToKind is the authoritative layout-class-to-element-kind
// mapping table. Unknown classes map to KindText.
var LayoutClassToKind = map[string]ElementKind{
	"Title":          KindTitle,
	"Section-header": KindTitle,
	"Text":           KindText,
	"Paragraph":      KindText,
	"List-item":      KindListItem,
	"Page-header":    KindHeader,
	"Page-footer":    KindFooter,
	"Picture":        KindImage,
	"Figure":         KindImage,
	"Table":          KindTable,
	"Caption":        KindCaption,
}

// KindForClass looks up a layout class in LayoutClassToKind, defaulting to
// KindText for anything unrecognized.
func KindForClass(class string) ElementKind {
	if k, ok := LayoutClassToKind[class]; ok {
		return k
	}
	return KindText
}

// TextBlock carries a fused region's text content plus font statistics.
type TextBlock struct {
	Text         string
	MeanFontSize float64
	Lines        []Line
}

// Element is the atomic output of page fusion.
type Element struct {
	ID          int
	PageID      int
	Kind        ElementKind
	BBox        BBox
	TextBlock   TextBlock
	LayoutScore float64
	NeedsOCR    bool
}
