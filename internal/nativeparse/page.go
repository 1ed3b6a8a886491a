// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import "fmt"

// page wraps a /Page dictionary Value, mirroring pdf-xtract's Page
// wrapper in page.go.
type page struct {
	v Value
}

// Page returns the 1-indexed page, matching pdf-xtract's numbering
// convention in page.go's Reader.Page.
func (d *Document) Page(num int) page {
	num--
	node := d.Trailer().Key("Root").Key("Pages")
	for node.Key("Type").Name() == "Pages" {
		count := int(node.Key("Count").Int64())
		if count <= num {
			return page{}
		}
		kids := node.Key("Kids")
		for i := 0; i < kids.Len(); i++ {
			kid := kids.Index(i)
			if kid.Key("Type").Name() == "Pages" {
				c := int(kid.Key("Count").Int64())
				if num < c {
					node = kid
					break
				}
				num -= c
				continue
			}
			if kid.Key("Type").Name() == "Page" {
				if num == 0 {
					return page{kid}
				}
				num--
			}
		}
	}
	return page{}
}

// NumPage returns the page count from the document's page tree root.
func (d *Document) NumPage() int {
	return int(d.Trailer().Key("Root").Key("Pages").Key("Count").Int64())
}

func (p page) findInherited(key string) Value {
	for v := p.v; !v.IsNull(); v = v.Key("Parent") {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
	}
	return Value{}
}

// MediaBox returns the page's bounding rectangle in PDF points.
func (p page) MediaBox() (w, h float64) {
	mb := p.findInherited("MediaBox")
	if mb.Kind() != Array || mb.Len() != 4 {
		return 612, 792 // US Letter default
	}
	x0, y0, x1, y1 := mb.Index(0).Float64(), mb.Index(1).Float64(), mb.Index(2).Float64(), mb.Index(3).Float64()
	return x1 - x0, y1 - y0
}

// Resources returns the page's /Resources dictionary.
func (p page) Resources() Value { return p.findInherited("Resources") }

// Font returns the named font resource.
func (p page) Font(name string) font {
	return font{v: p.Resources().Key("Font").Key(name), id: name}
}

// Contents returns the page's content-stream bytes, concatenating an
// array of streams the way the PDF spec requires.
func (p page) Contents() []byte {
	c := p.v.Key("Contents")
	if c.Kind() == Stream {
		return c.StreamBytes()
	}
	if c.Kind() == Array {
		var out []byte
		for i := 0; i < c.Len(); i++ {
			out = append(out, c.Index(i).StreamBytes()...)
		}
		return out
	}
	return nil
}

// font wraps a /Font dictionary Value, mirroring pdf-xtract's Font in
// page.go. id is the page-local resource name used as entities.Char's
// FontID, which span breaks compare directly.
type font struct {
	v  Value
	id string
}

func (f font) baseFont() string { return f.v.Key("BaseFont").Name() }

func (f font) firstChar() int { return int(f.v.Key("FirstChar").Int64()) }
func (f font) lastChar() int  { return int(f.v.Key("LastChar").Int64()) }

// width returns the glyph width for a character code, in 1/1000 em units,
// falling back to a plausible average width when no /Widths array is
// present (e.g. a standard-14 font), matching pdf-xtract's Font.Width
// fallback-free behavior but avoiding a zero-width default that would
// collapse every glyph onto the same point.
func (f font) width(code int) float64 {
	first, last := f.firstChar(), f.lastChar()
	widths := f.v.Key("Widths")
	if code >= first && code <= last && widths.Kind() == Array {
		if w := widths.Index(code - first).Float64(); w > 0 {
			return w
		}
	}
	return 500
}

func (f font) String() string {
	return fmt.Sprintf("font(%s/%s)", f.id, f.baseFont())
}
