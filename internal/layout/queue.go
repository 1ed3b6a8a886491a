// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"context"
	"image"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sassoftware/docstruct/logger"
)

// LayoutRequest is one fusion task's submission to the queue.
type LayoutRequest struct {
	PageID          int
	Image           image.Image
	DownscaleFactor float64
	Reply           chan LayoutResponse
	EnqueueTime     time.Time
}

// LayoutResponse is the queue's single reply per request.
type LayoutResponse struct {
	PageID     int
	Boxes      []LayoutBBox
	InferenceMS int64
	QueueMS    int64
	Err        error
}

// Queue is the layout queue: a bounded channel feeding N worker
// goroutines, each gated by a permit semaphore sized to the engine's
// intra-op thread count. Grounded on pdf-xtract's semaphore-gated
// worker pool in its former processor.go.
type Queue struct {
	requests chan LayoutRequest
	sess     *Session
	pool     *BufferPool
	sem      *semaphore.Weighted
}

// NewQueue starts N worker goroutines reading from a channel bounded to
// capacity, each permit-gated by a semaphore of size intraOpThreads —
// permit sizing is tied to the engine's intra-op thread count, not the
// task-scheduler worker count.
func NewQueue(sess *Session, pool *BufferPool, capacity, workers, intraOpThreads int) *Queue {
	if workers < 1 {
		workers = 1
	}
	if intraOpThreads < 1 {
		intraOpThreads = 1
	}
	q := &Queue{
		requests: make(chan LayoutRequest, capacity),
		sess:     sess,
		pool:     pool,
		sem:      semaphore.NewWeighted(int64(intraOpThreads)),
	}
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	for req := range q.requests {
		q.serve(req)
	}
}

func (q *Queue) serve(req LayoutRequest) {
	queueMS := time.Since(req.EnqueueTime).Milliseconds()
	ctx := context.Background()
	if err := q.sem.Acquire(ctx, 1); err != nil {
		trySend(req.Reply, LayoutResponse{PageID: req.PageID, Err: err})
		return
	}
	defer q.sem.Release(1)

	start := time.Now()
	fut := InferAsync(q.sess, q.pool, req.Image)
	boxes, err := fut.Await(ctx)
	inferenceMS := time.Since(start).Milliseconds()
	if err == nil {
		boxes = RescaleBoxes(boxes, req.DownscaleFactor)
	}
	trySend(req.Reply, LayoutResponse{
		PageID:      req.PageID,
		Boxes:       boxes,
		InferenceMS: inferenceMS,
		QueueMS:     queueMS,
		Err:         err,
	})
}

// trySend delivers resp unless the reply channel has been abandoned.
func trySend(reply chan LayoutResponse, resp LayoutResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("layout: reply channel closed, response discarded", true)
		}
	}()
	select {
	case reply <- resp:
	default:
		logger.Debug("layout: reply channel unready, response discarded", true)
	}
}

// Push enqueues req.
func (q *Queue) Push(req LayoutRequest) {
	q.requests <- req
}

// Close stops accepting new requests.
func (q *Queue) Close() { close(q.requests) }
