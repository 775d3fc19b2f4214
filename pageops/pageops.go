// Package pageops combines generated reports into one PDF, optionally
// stamping each page and numbering the pages of the combined batch.
//
// Input pages are imported as templates through gofpdi; page counts come
// from a PDF parser so malformed input is rejected before import.
package pageops

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/ledongthuc/pdf"
)

// A4 in points, used when an input page has no readable MediaBox.
const (
	a4Width  = 595.28
	a4Height = 841.89
)

// Position specifies where to place an element on a page.
type Position int

const (
	BottomCenter Position = iota
	BottomLeft
	BottomRight
	TopLeft
	TopCenter
	TopRight
	Center
)

// PageCount returns the number of pages in a PDF document.
func PageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("pageops: reading pdf: %w", err)
	}
	return r.NumPage(), nil
}

// source is one input document being imported.
type source struct {
	rs    io.ReadSeeker
	pages int
}

func newSource(data []byte) (*source, error) {
	n, err := PageCount(data)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("pageops: document has no pages")
	}
	return &source{rs: bytes.NewReader(data), pages: n}, nil
}

// importPage imports a single page of src into the target PDF.
// Returns the template ID and page dimensions.
func importPage(doc *fpdf.Fpdf, imp *gofpdi.Importer, src *source, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPageFromStream(doc, &src.rs, pageNum, "/MediaBox")
	w, h = a4Width, a4Height
	if dims, ok := imp.GetPageSizes()[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
			w, h = mb["w"], mb["h"]
		}
	}
	return tplID, w, h
}
