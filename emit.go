package hospreport

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

var unsafeKey = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileKey makes s safe for a file name, keeping case and digits:
// "PAT 001/24" becomes "PAT_001_24". Empty input yields "sem_identificacao".
func FileKey(s string) string {
	key := strings.Trim(unsafeKey.ReplaceAllString(strings.TrimSpace(s), "_"), "_")
	if key == "" {
		return "sem_identificacao"
	}
	return key
}

// Filename returns "<prefix>_<key>_<YYYY-MM-DD>.pdf". It depends only on its
// arguments, so equal inputs on the same day give equal names.
func Filename(prefix, key string, day time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, FileKey(key), day.Format("2006-01-02"))
}

// Generate renders doc on a new PDFCanvas and writes the PDF to w.
func Generate(w io.Writer, doc Document, opts ...Option) (Result, error) {
	cfg := newConfig(opts)
	now := cfg.now()
	cfg.now = func() time.Time { return now }

	canvas := NewPDFCanvas(Metadata{
		Title:    doc.Title,
		Author:   cfg.author,
		Keywords: "documento:" + cfg.id,
		Created:  now,
	}, cfg.compress)
	res, err := render(canvas, doc, cfg)
	if err != nil {
		return res, err
	}
	if err := canvas.Output(w); err != nil {
		return res, fmt.Errorf("hospreport: writing pdf: %w", err)
	}
	return res, nil
}

// GenerateFile renders doc into the file at path.
func GenerateFile(path string, doc Document, opts ...Option) (Result, error) {
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("hospreport: creating %s: %w", path, err)
	}
	res, err := Generate(f, doc, opts...)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return res, err
}
