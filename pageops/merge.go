package pageops

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Options controls what is drawn over the merged pages.
type Options struct {
	Stamp       *Stamp           // drawn on every page when set
	PageNumbers *PageNumberStyle // numbers pages across the whole batch when set
}

// Merge combines PDF documents and writes the result to w.
// Pages are added in order: all pages of the first input, then the second.
func Merge(w io.Writer, inputs ...[]byte) error {
	return MergeWith(w, Options{}, inputs...)
}

// MergeWith is Merge with overlays.
func MergeWith(w io.Writer, opts Options, inputs ...[]byte) (err error) {
	if len(inputs) == 0 {
		return fmt.Errorf("pageops: no input documents provided")
	}
	sources := make([]*source, len(inputs))
	total := 0
	for i, data := range inputs {
		if sources[i], err = newSource(data); err != nil {
			return fmt.Errorf("pageops: input %d: %w", i+1, err)
		}
		total += sources[i].pages
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: importing pages: %v", r)
		}
	}()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	imp := gofpdi.NewImporter()

	page := 0
	for _, src := range sources {
		for i := 1; i <= src.pages; i++ {
			page++
			tplID, pw, ph := importPage(doc, imp, src, i)
			doc.AddPageFormat("P", fpdf.SizeType{Wd: pw, Ht: ph})
			imp.UseImportedTemplate(doc, tplID, 0, 0, pw, ph)
			if opts.Stamp != nil {
				drawStamp(doc, tr, *opts.Stamp, pw, ph)
			}
			if opts.PageNumbers != nil {
				drawPageNumber(doc, tr, *opts.PageNumbers, page, total, pw, ph)
			}
		}
	}

	if doc.Err() {
		return fmt.Errorf("pageops: merge: %w", doc.Error())
	}
	return doc.Output(w)
}

// MergeFiles combines PDF files into a single output file.
func MergeFiles(outputPath string, inputPaths ...string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("pageops: no input files provided")
	}
	inputs := make([][]byte, len(inputPaths))
	for i, p := range inputPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("pageops: reading %s: %w", p, err)
		}
		inputs[i] = data
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", outputPath, err)
	}
	err = Merge(f, inputs...)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return err
}
