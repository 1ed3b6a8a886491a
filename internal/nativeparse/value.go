// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

// ValueKind classifies a Value the way pdf-xtract's read.go classifies
// its own Value type, trimmed to the kinds this package's object-model
// walk actually produces.
type ValueKind int

const (
	Null ValueKind = iota
	Integer
	Real
	Bool
	NameKind
	String
	Dict
	Array
	Stream
)

// Value is a node in the PDF object graph, resolving indirect references
// transparently the way pdf-xtract's Value.Key/Index do.
type Value struct {
	doc *Document
	raw interface{}
}

func (v Value) resolved() interface{} {
	if ref, ok := v.raw.(reference); ok {
		if v.doc == nil {
			return nil
		}
		rv, err := v.doc.resolve(objptr(ref))
		if err != nil {
			return nil
		}
		return rv.raw
	}
	return v.raw
}

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool { return v.resolved() == nil }

// Kind reports v's PDF object kind.
func (v Value) Kind() ValueKind {
	switch v.resolved().(type) {
	case nil:
		return Null
	case int64:
		return Integer
	case float64:
		return Real
	case bool:
		return Bool
	case name:
		return NameKind
	case string:
		return String
	case dict:
		return Dict
	case array:
		return Array
	case stream:
		return Stream
	default:
		return Null
	}
}

// Int64 returns v as an integer, or 0 if v is not a number.
func (v Value) Int64() int64 {
	switch r := v.resolved().(type) {
	case int64:
		return r
	case float64:
		return int64(r)
	}
	return 0
}

// Float64 returns v as a float, or 0 if v is not a number.
func (v Value) Float64() float64 {
	switch r := v.resolved().(type) {
	case int64:
		return float64(r)
	case float64:
		return r
	}
	return 0
}

// Bool returns v as a bool.
func (v Value) Bool() bool {
	b, _ := v.resolved().(bool)
	return b
}

// Name returns v's name text, without the leading slash.
func (v Value) Name() string {
	if n, ok := v.resolved().(name); ok {
		return string(n)
	}
	return ""
}

// RawString returns v's raw (un-decoded) string bytes.
func (v Value) RawString() string {
	if s, ok := v.resolved().(string); ok {
		return s
	}
	return ""
}

// Key looks up a dictionary key, or the dict of a Stream's header. Returns
// a null Value if v is not a Dict/Stream or the key is absent.
func (v Value) Key(key string) Value {
	switch r := v.resolved().(type) {
	case dict:
		return Value{doc: v.doc, raw: r[key]}
	case stream:
		return Value{doc: v.doc, raw: r.dict[key]}
	default:
		return Value{}
	}
}

// Keys returns the key names of a Dict, in no particular order.
func (v Value) Keys() []string {
	d, ok := v.resolved().(dict)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}

// Index returns the i'th element of an Array.
func (v Value) Index(i int) Value {
	a, ok := v.resolved().(array)
	if !ok || i < 0 || i >= len(a) {
		return Value{}
	}
	return Value{doc: v.doc, raw: a[i]}
}

// Len returns an Array's length, or 0 otherwise.
func (v Value) Len() int {
	a, ok := v.resolved().(array)
	if !ok {
		return 0
	}
	return len(a)
}

// StreamBytes returns a Stream value's decoded data.
func (v Value) StreamBytes() []byte {
	s, ok := v.resolved().(stream)
	if !ok {
		return nil
	}
	return s.data
}
