// Package extract turns raw document bytes into per-page plain text.
package extract

import (
	"bytes"
	"context"

	"github.com/ledongthuc/pdf"

	"docrag/internal/ragerr"
)

// Extractor reads a document format and yields its text page by page.
// PageCount must be cheap relative to Pages so callers can enforce page
// ceilings before paying for full extraction.
type Extractor interface {
	PageCount(ctx context.Context, data []byte) (int, error)
	Pages(ctx context.Context, data []byte) ([]string, error)
}

// PDFExtractor extracts text from PDF bytes.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

// PageCount parses the PDF structure and returns the number of pages without
// extracting any text.
func (e *PDFExtractor) PageCount(ctx context.Context, data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, ragerr.Wrap(ragerr.KindExtraction, err, "open PDF")
	}
	return r.NumPage(), nil
}

// Pages returns the plain text of each page, in order. Pages with no content
// stream come back as empty strings so indices stay aligned with the document.
func (e *PDFExtractor) Pages(ctx context.Context, data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindExtraction, err, "open PDF")
	}
	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, ragerr.Wrap(ragerr.KindExtraction, err, "extract page %d", i)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
