// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package docstruct

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sassoftware/docstruct/entities"
	"github.com/sassoftware/docstruct/internal/fusion"
	"github.com/sassoftware/docstruct/internal/layout"
	"github.com/sassoftware/docstruct/internal/merge"
	"github.com/sassoftware/docstruct/internal/nativeparse"
	"github.com/sassoftware/docstruct/logger"
	"github.com/sassoftware/docstruct/tracer"
)

// PageCallback is invoked once per page as soon as its fusion task
// completes, in whatever order pages finish.
type PageCallback func(entities.StructuredPage)

// Parser is the document orchestrator: it owns the long-lived native
// parse queue and layout queue and drives each document through
// submit -> fan-out-fuse -> merge, with at most MaxConcurrentDocuments
// documents in ParseDocument at once. Grounded on pdf-xtract's Processor
// construction-and-worker-pool shape, generalized from single-stage text
// extraction to the full multi-stage pipeline.
type Parser struct {
	cfg        *Config
	nativeQ    *nativeparse.Queue
	layoutSess *layout.Session
	layoutPool *layout.BufferPool
	layoutQ    *layout.Queue
	ocr        fusion.Backend
	docSem     *semaphore.Weighted
}

// NewParser wires the native-parse queue, the ONNX layout session and
// buffer pool, and the layout queue from cfg.
func NewParser(cfg *Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.SetLogger(cfg.Logger)

	sess, err := layout.NewSession(layout.EngineConfig{
		SharedLibraryPath: cfg.ORT.SharedLibraryPath,
		ModelPath:         cfg.ORT.ModelPath,
		InputNames:        []string{"images"},
		OutputNames:       []string{"output"},
		InputWidth:        cfg.ORT.InputWidth,
		InputHeight:       cfg.ORT.InputHeight,
		IntraOpThreads:    cfg.ORT.IntraOpThreads,
		InterOpThreads:    cfg.ORT.InterOpThreads,
	})
	if err != nil {
		return nil, fmt.Errorf("layout session: %w", err)
	}

	shape := ort.NewShape(1, 3, int64(cfg.ORT.InputHeight), int64(cfg.ORT.InputWidth))
	pool, err := layout.NewBufferPool(cfg.BufferPoolSize, shape)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("buffer pool: %w", err)
	}

	layoutQ := layout.NewQueue(sess, pool, cfg.LayoutQueueCapacity, cfg.LayoutWorkers, cfg.ORT.IntraOpThreads)
	nativeQ := nativeparse.NewQueue(cfg.NativeQueueCapacity)

	return &Parser{
		cfg:        cfg,
		nativeQ:    nativeQ,
		layoutSess: sess,
		layoutPool: pool,
		layoutQ:    layoutQ,
		ocr:        ocrBackendFor(cfg.OCRBackend),
		docSem:     semaphore.NewWeighted(int64(cfg.MaxConcurrentDocuments)),
	}, nil
}

// ocrBackendFor resolves the configured backend name.
func ocrBackendFor(name string) fusion.Backend {
	switch name {
	case "", "none":
		return fusion.NotImplementedBackend{}
	case "tesseract":
		return fusion.TesseractBackend{}
	default:
		logger.Debug(fmt.Sprintf("docstruct: unknown ocr_backend %q, falling back to not-implemented", name), true)
		return fusion.NotImplementedBackend{}
	}
}

// Close releases the layout session, buffer pool, and both queues.
func (p *Parser) Close() error {
	p.nativeQ.Close()
	p.layoutQ.Close()
	p.layoutPool.Close()
	return p.layoutSess.Close()
}

// ParseDocument runs the full pipeline for one document: submit to the
// native queue; for each page result, spawn a fusion task; each fusion
// task pushes a layout request, awaits the response, runs Fuse, and
// invokes pageCallback; await all fusion tasks; run the title leveler;
// run the block merger; assemble the final ParsedDocument.
func (p *Parser) ParseDocument(ctx context.Context, req ParseRequest, pageCallback PageCallback) (*entities.ParsedDocument, error) {
	if err := p.docSem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire document slot: %w", err)
	}
	defer p.docSem.Release(1)

	stop := tracer.Stage(fmt.Sprintf("parse_document_%s", req.DocName))

	var pageRange *nativeparse.PageRange
	if req.PageRange != nil {
		pageRange = &nativeparse.PageRange{Start: req.PageRange.Start, End: req.PageRange.End}
	}

	stream := p.nativeQ.Submit(nativeparse.Request{
		Data:      req.Bytes,
		Password:  req.Password,
		Flatten:   req.FlattenPDF,
		Range:     pageRange,
		DetectorW: float64(p.cfg.ORT.InputWidth),
		DetectorH: float64(p.cfg.ORT.InputHeight),
	})

	ids := &fusion.IDCounter{}
	g, gctx := errgroup.WithContext(ctx)

	var (
		pagesMu    sync.Mutex
		pages      []entities.StructuredPage
		pagesCount int
		docTitle   string
		docAuthor  string
		total      int
	)
	var nativeErrCount, pageCount int

	for item := range stream {
		if item.Done {
			docTitle, docAuthor, total = item.Title, item.Author, item.PageCount
			continue
		}
		if item.Err != nil {
			var pe *entities.ParseError
			if errors.As(item.Err, &pe) && pe.Kind == entities.ErrParseNative {
				_ = g.Wait()
				return nil, item.Err
			}
			nativeErrCount++
			logger.Error(fmt.Sprintf("docstruct: native parse error: %v", item.Err))
			continue
		}
		pageCount++
		res := item.Result
		g.Go(func() error {
			sp, err := p.fusePage(gctx, res, ids)
			if err != nil {
				logger.Error(fmt.Sprintf("docstruct: page %d fusion failed: %v", res.PageID, err))
				return nil // per-page failures are logged and dropped rather than aborting the document
			}
			if pageCallback != nil {
				pageCallback(sp)
			}
			pagesMu.Lock()
			pages = append(pages, sp)
			pagesMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if pageCount > 0 && len(pages) == 0 {
		return nil, entities.NewLayoutParsingError(fmt.Errorf("all %d pages failed fusion", pageCount))
	}

	sortPagesByID(pages)

	var allElements []entities.Element
	pageHeights := make(map[int]float64, len(pages))
	for _, sp := range pages {
		allElements = append(allElements, sp.Elements...)
		pageHeights[sp.ID] = sp.Height
	}

	var titleElements []entities.Element
	for _, el := range allElements {
		if el.Kind == entities.KindTitle || el.Kind == entities.KindSubtitle {
			titleElements = append(titleElements, el)
		}
	}

	blocks, err := mergeBlocks(allElements, pageHeights, titleElements)
	if err != nil {
		return nil, err
	}

	pagesCount = total
	if pagesCount == 0 {
		pagesCount = len(pages)
	}

	duration := stop()

	return &entities.ParsedDocument{
		DocName: req.DocName,
		Pages:   pages,
		Blocks:  blocks,
		Metadata: entities.DocumentMetadata{
			ParsingDuration: duration,
			Title:           docTitle,
			Author:          docAuthor,
			PageCount:       pagesCount,
		},
	}, nil
}

// fusePage pushes one page's layout request and runs Fuse once the
// layout response arrives.
func (p *Parser) fusePage(ctx context.Context, res nativeparse.Result, ids *fusion.IDCounter) (entities.StructuredPage, error) {
	reply := make(chan layout.LayoutResponse, 1)
	p.layoutQ.Push(layout.LayoutRequest{
		PageID:          res.PageID,
		Image:           res.ImageDetector,
		DownscaleFactor: res.DownscaleFactor,
		Reply:           reply,
		EnqueueTime:     time.Now(),
	})

	var resp layout.LayoutResponse
	select {
	case resp = <-reply:
	case <-ctx.Done():
		return entities.StructuredPage{}, ctx.Err()
	}
	if resp.Err != nil {
		return entities.StructuredPage{}, resp.Err
	}
	tracer.Log(fmt.Sprintf("page %d: parse_ms=%d queue_ms=%d inference_ms=%d",
		res.PageID, res.ParseMS, resp.QueueMS, resp.InferenceMS))

	return fusion.Fuse(res, resp.Boxes, ids, p.ocr)
}

// mergeBlocks runs the title leveler then the block merger in sequence:
// level assignment must be known before Title blocks are emitted.
func mergeBlocks(elements []entities.Element, pageHeights map[int]float64, titleElements []entities.Element) ([]entities.Block, error) {
	levels := merge.KMeansLevels(titleElements)
	blocks, err := merge.Merge(elements, pageHeights, levels)
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func sortPagesByID(pages []entities.StructuredPage) {
	for i := 1; i < len(pages); i++ {
		for j := i; j > 0 && pages[j-1].ID > pages[j].ID; j-- {
			pages[j-1], pages[j] = pages[j], pages[j-1]
		}
	}
}
