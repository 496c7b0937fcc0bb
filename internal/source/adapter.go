// Package source obtains the raw catalog text, either from a previously
// extracted cache file or by extracting the PDF page by page.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/ctc-parts/catalog-importer/internal/common"
)

// Adapter is the pipeline's text source. The cache file is trusted
// unconditionally when it exists, even if PDFPath changed: delete the cache
// to force re-extraction.
type Adapter struct {
	PDFPath   string
	CachePath string
	Logger    *slog.Logger
}

func NewAdapter(pdfPath, cachePath string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{PDFPath: pdfPath, CachePath: cachePath, Logger: logger}
}

// DocumentText returns the full catalog text. Extraction output is written
// to the cache path as a side effect; a cache write failure is only a
// warning since the text is already in hand.
func (a *Adapter) DocumentText(ctx context.Context) (string, error) {
	if a.CachePath != "" {
		if b, err := os.ReadFile(a.CachePath); err == nil {
			a.Logger.Info("source.cache_hit", "path", a.CachePath, "bytes", len(b))
			return string(b), nil
		}
	}

	text, pages, err := a.extractPDF(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	if a.CachePath != "" {
		if werr := os.WriteFile(a.CachePath, []byte(text), 0644); werr != nil {
			a.Logger.Warn("source.cache_write_failed", "path", a.CachePath, "error", werr)
		}
	}
	a.Logger.Info("source.extracted", "path", a.PDFPath, "pages", pages, "bytes", len(text))
	return text, nil
}

// extractPDF walks the document in page order. Each page's recognized text
// fragments are joined with single spaces; pages are joined with newlines,
// so downstream line splitting sees one line per page.
func (a *Adapter) extractPDF(ctx context.Context) (string, int, error) {
	start := time.Now()

	f, r, err := pdf.Open(a.PDFPath)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			a.Logger.Warn("source.close_failed", "path", a.PDFPath, "error", cerr)
		}
	}()

	var pages []string
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))
		if i%50 == 0 {
			a.Logger.Info("source.progress", "page", i, "total", total)
		}
	}

	a.Logger.Info("source.pdf_done",
		"pages", total,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.Join(pages, "\n"), total, nil
}

func pageText(page pdf.Page) string {
	content := page.Content()
	parts := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		parts = append(parts, t.S)
	}
	return strings.Join(parts, " ")
}
