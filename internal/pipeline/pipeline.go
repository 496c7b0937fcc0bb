// Package pipeline wires the extraction stages together: source text in,
// deduplicated candidate records out.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ctc-parts/catalog-importer/internal/catalog"
	"github.com/ctc-parts/catalog-importer/internal/common"
	"github.com/ctc-parts/catalog-importer/internal/reconcile"
	"github.com/ctc-parts/catalog-importer/internal/segment"
)

// TextSource produces the raw catalog text (see internal/source).
type TextSource interface {
	DocumentText(ctx context.Context) (string, error)
}

// Pipeline runs segmentation and reconciliation over a catalog document.
// Data flows strictly forward; a later stage never revises an earlier one.
type Pipeline struct {
	Logger    *slog.Logger
	Source    TextSource
	Segmenter *segment.Segmenter
}

func New(logger *slog.Logger, src TextSource, seg *segment.Segmenter) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Source: src, Segmenter: seg}
}

// Run extracts every candidate record from the source document. It fails
// with ErrNoRecords when segmentation yields nothing, so callers abort
// before touching the API.
func (p *Pipeline) Run(ctx context.Context) ([]catalog.Record, error) {
	start := time.Now()

	text, err := p.Source.DocumentText(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	records, lines, err := p.extract(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %d lines scanned", common.ErrNoRecords, lines)
	}

	p.Logger.Info("pipeline.ok",
		"lines", lines,
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

func (p *Pipeline) extract(ctx context.Context, text string) ([]catalog.Record, int, error) {
	lines := p.Segmenter.Lines(text)
	rec := reconcile.New(p.Logger)

	var records []catalog.Record
	for i := range lines {
		if err := ctx.Err(); err != nil {
			return nil, i, err
		}
		if p.Segmenter.Skip(lines[i]) {
			continue
		}
		lf := p.Segmenter.SegmentLine(lines, i)
		for _, r := range rec.Reconcile(lf) {
			if rec.Keep(r) {
				records = append(records, reconcile.Normalize(r))
			}
		}
		if i > 0 && i%100 == 0 {
			p.Logger.Info("pipeline.progress", "lines", i, "records", len(records))
		}
	}
	return records, len(lines), nil
}
