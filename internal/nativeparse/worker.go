// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package nativeparse

import (
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/sassoftware/docstruct/entities"
	"github.com/sassoftware/docstruct/logger"
	"github.com/sassoftware/docstruct/tracer"
)

// MinQueueCapacity is the smallest bounded-channel capacity the native
// queue accepts.
const MinQueueCapacity = 10

// PageRange is a half-open page selection, Start inclusive and End
// exclusive, zero-indexed.
type PageRange struct {
	Start, End int
}

// Request carries everything a native parse submission needs: the
// document bytes, an optional password, a flatten flag, an optional
// page range, and the layout detector's required raster dimensions.
type Request struct {
	Data       []byte
	Password   string
	Flatten    bool
	Range      *PageRange
	DetectorW  float64
	DetectorH  float64
}

// Result is one page's native-parse output.
type Result struct {
	PageID          int
	Lines           []entities.Line
	PageBBox        entities.BBox
	ImageDetector   image.Image
	ImageNative     image.Image
	DownscaleFactor float64
	ParseMS         int64
}

// StreamItem is one element of a submission's output stream (a channel
// with a one-item buffer, so parsing waits on a stalled reader): either a
// Result or a terminal/per-page error. The terminal Done item carries
// document-level metadata recovered from the PDF Info dictionary.
type StreamItem struct {
	Result     Result
	Err        error
	Done       bool
	Title      string
	Author     string
	PageCount  int
}

// Queue is the native page parser: a single dedicated OS thread (the
// document handle is not safe to share across goroutines) draining a
// bounded request channel. Grounded on pdf-xtract's processor.go
// worker-pool idiom.
type Queue struct {
	requests chan submission
}

type submission struct {
	req  Request
	out  chan StreamItem
}

// NewQueue starts the dedicated parsing goroutine with the given bounded
// capacity (clamped up to MinQueueCapacity).
func NewQueue(capacity int) *Queue {
	if capacity < MinQueueCapacity {
		capacity = MinQueueCapacity
	}
	q := &Queue{requests: make(chan submission, capacity)}
	go q.run()
	return q
}

func (q *Queue) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for sub := range q.requests {
		q.process(sub.req, sub.out)
		close(sub.out)
	}
}

// Submit enqueues a parse request and returns the stream channel it will
// be served on. Backpressure is provided by the channel send
// itself: once the queue's capacity of pending submissions is reached,
// callers block.
func (q *Queue) Submit(req Request) <-chan StreamItem {
	out := make(chan StreamItem, 1)
	q.requests <- submission{req: req, out: out}
	return out
}

// Close stops accepting new submissions; already-queued requests still
// drain.
func (q *Queue) Close() { close(q.requests) }

func (q *Queue) process(req Request, out chan<- StreamItem) {
	logger.Debug("nativeparse: opening document", true)
	doc, err := Open(req.Data, req.Password)
	if err != nil {
		out <- StreamItem{Err: fmt.Errorf("%w", entities.NewParseNativeError(err))}
		return
	}
	ren, err := newRenderer(req.Data)
	if err != nil {
		out <- StreamItem{Err: fmt.Errorf("%w", entities.NewParseNativeError(err))}
		return
	}
	defer ren.close()

	total := ren.numPage()
	pr := PageRange{Start: 0, End: total}
	if req.Range != nil {
		pr = *req.Range
	}
	if pr.End > total {
		out <- StreamItem{Err: fmt.Errorf("%w", entities.NewParseNativeError(
			fmt.Errorf("page range end %d exceeds page count %d", pr.End, total)))}
		return
	}

	for i := pr.Start; i < pr.End; i++ {
		stop := tracer.Stage(fmt.Sprintf("native_parse_page_%d", i))
		res, perr := q.parsePage(doc, ren, i, req)
		ms := stop().Milliseconds()
		if perr != nil {
			out <- StreamItem{Err: fmt.Errorf("%w", entities.NewParseTextError("", i, perr))}
			continue
		}
		res.ParseMS = ms
		out <- StreamItem{Result: res}
	}
	title, author := metadataOf(doc)
	out <- StreamItem{Done: true, Title: title, Author: author, PageCount: total}
}

func (q *Queue) parsePage(doc *Document, ren *renderer, pageIdx int, req Request) (Result, error) {
	pageW, pageH, err := ren.bounds(pageIdx)
	if err != nil {
		return Result{}, err
	}
	rescale := 1.0
	if req.DetectorW > 0 && req.DetectorH > 0 && pageW > 0 && pageH > 0 {
		rescale = math.Min(req.DetectorW/pageW, req.DetectorH/pageH)
	}
	native, detector, err := ren.renderTwoScales(pageIdx, rescale)
	if err != nil {
		return Result{}, err
	}

	p := doc.Page(pageIdx + 1) // nativeparse.Document.Page is 1-indexed
	chars := p.ExtractChars(pageH)
	spans := entities.BuildSpans(chars)
	lines := entities.BuildLines(spans)

	return Result{
		PageID:          pageIdx,
		Lines:           lines,
		PageBBox:        entities.NewBBox(0, 0, pageW, pageH),
		ImageDetector:   detector,
		ImageNative:     native,
		DownscaleFactor: 1 / rescale,
	}, nil
}

// metadataOf reads document-level Info fields, used by the orchestrator
// to populate entities.DocumentMetadata.
func metadataOf(doc *Document) (title, author string) {
	info := doc.Info()
	return info.Key("Title").RawString(), info.Key("Author").RawString()
}
