// Package labels prints asset identification labels (QR code, Code 128 or
// PDF417) on A4 adhesive label sheets.
package labels

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf/contrib/barcode"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/reports"
)

// Symbology selects the barcode printed on each label.
type Symbology int

const (
	QR Symbology = iota
	Code128
	PDF417
)

// ParseSymbology maps "qr", "code128" and "pdf417" to a Symbology.
func ParseSymbology(s string) (Symbology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "qr":
		return QR, nil
	case "code128":
		return Code128, nil
	case "pdf417":
		return PDF417, nil
	}
	return QR, fmt.Errorf("labels: unknown symbology %q", s)
}

var (
	// ErrNoCode is returned for a label without a code to encode.
	ErrNoCode = errors.New("labels: label has no code")
	// ErrUnencodable is returned for a code the symbology cannot carry,
	// such as accented letters in Code 128.
	ErrUnencodable = errors.New("labels: code cannot be encoded")
)

// Label is one adhesive label.
type Label struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Code     string `json:"code"`
}

// FromEquipment labels e with its name, sector and patrimony number.
func FromEquipment(e reports.Equipment) Label {
	l := Label{Title: format.Text(e.Nome), Code: reports.EquipmentKey(e)}
	if e.Setor != nil {
		l.Subtitle = e.Setor.Nome
	}
	return l
}

// Sheet is the label grid of one A4 page, in millimetres.
type Sheet struct {
	Columns, Rows int
	Width, Height float64 // one label
	Left, Top     float64 // first label origin
	GapX, GapY    float64
}

// A4Sheet is a 3×8 grid of 63.5 × 33.9 mm labels.
func A4Sheet() Sheet {
	return Sheet{Columns: 3, Rows: 8, Width: 63.5, Height: 33.9, Left: 7.2, Top: 12.9, GapX: 2.5}
}

// PerPage is the number of labels on one sheet.
func (s Sheet) PerPage() int { return s.Columns * s.Rows }

// origin returns the top-left corner of the i-th label on its page.
func (s Sheet) origin(i int) (x, y float64) {
	i %= s.PerPage()
	col, row := i%s.Columns, i/s.Columns
	return s.Left + float64(col)*(s.Width+s.GapX), s.Top + float64(row)*(s.Height+s.GapY)
}

type config struct {
	sheet     Sheet
	symbology Symbology
	border    bool
	skip      int
}

// Option configures Render.
type Option func(*config)

// WithSheet replaces the default A4 sheet.
func WithSheet(s Sheet) Option { return func(c *config) { c.sheet = s } }

// WithSymbology selects the barcode type.
func WithSymbology(s Symbology) Option { return func(c *config) { c.symbology = s } }

// WithBorder outlines every label, for printing on plain paper.
func WithBorder(b bool) Option { return func(c *config) { c.border = b } }

// WithSkip leaves the first n positions empty, to reuse a partly used sheet.
func WithSkip(n int) Option { return func(c *config) { c.skip = max(0, n) } }

// Render writes the label sheets to w and returns the number of pages.
func Render(w io.Writer, labels []Label, opts ...Option) (int, error) {
	cfg := config{sheet: A4Sheet()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sheet.PerPage() <= 0 || cfg.sheet.Width <= 0 || cfg.sheet.Height <= 0 {
		return 0, fmt.Errorf("labels: invalid sheet %+v", cfg.sheet)
	}
	cfg.skip %= cfg.sheet.PerPage()
	for i, l := range labels {
		if strings.TrimSpace(l.Code) == "" {
			return 0, fmt.Errorf("labels[%d]: %w", i, ErrNoCode)
		}
		if err := encodable(cfg.symbology, l.Code); err != nil {
			return 0, fmt.Errorf("labels[%d]: %w: %v", i, ErrUnencodable, err)
		}
	}

	c := hospreport.NewPDFCanvas(hospreport.Metadata{Title: "Etiquetas patrimoniais"}, true)
	for i, l := range labels {
		pos := i + cfg.skip
		if pos%cfg.sheet.PerPage() == 0 || i == 0 {
			c.AddPage()
		}
		x, y := cfg.sheet.origin(pos)
		draw(c, cfg, l, x, y)
	}
	if len(labels) == 0 {
		c.AddPage()
	}
	if err := c.Error(); err != nil {
		return 0, fmt.Errorf("labels: %w", err)
	}
	if err := c.Output(w); err != nil {
		return 0, fmt.Errorf("labels: writing pdf: %w", err)
	}
	return c.PageCount(), nil
}

// encodable runs the barcode encoder ahead of drawing.
func encodable(sym Symbology, code string) error {
	switch sym {
	case QR:
		_, err := qr.Encode(code, qr.M, qr.Auto)
		return err
	case Code128:
		_, err := code128.Encode(code)
		return err
	case PDF417:
		for _, r := range code {
			if r < ' ' || r > '~' {
				return fmt.Errorf("%q outside printable ASCII", r)
			}
		}
	}
	return nil
}

const pad = 3.0

func draw(c *hospreport.PDFCanvas, cfg config, l Label, x, y float64) {
	s := cfg.sheet
	if cfg.border {
		c.Rect(x, y, s.Width, s.Height, false)
	}
	textX, textW := x+pad, s.Width-2*pad
	textY := y + pad

	pdf := c.Fpdf()
	switch cfg.symbology {
	case QR:
		size := s.Height - 2*pad
		key := barcode.RegisterQR(pdf, l.Code, qr.M, qr.Auto)
		barcode.Barcode(pdf, key, x+pad, y+pad, size, size, false)
		textX = x + 2*pad + size
		textW = s.Width - 3*pad - size
	case Code128:
		key := barcode.RegisterCode128(pdf, l.Code)
		barcode.Barcode(pdf, key, x+pad, y+s.Height-pad-14, s.Width-2*pad, 10, false)
	case PDF417:
		key := barcode.RegisterPdf417(pdf, l.Code, 4, 2)
		barcode.Barcode(pdf, key, x+pad, y+s.Height-pad-17, s.Width-2*pad, 12, false)
	}

	c.SetFont(hospreport.Bold, 9)
	c.Text(textX, textY+3, first(c, l.Title, textW))
	if l.Subtitle != "" {
		c.SetFont(hospreport.Regular, 8)
		c.Text(textX, textY+7.5, first(c, l.Subtitle, textW))
	}
	c.SetFont(hospreport.Regular, 7)
	codeY := textY + 12
	if cfg.symbology != QR {
		codeY = y + s.Height - pad
	}
	c.Text(textX, codeY, first(c, l.Code, textW))
}

func first(c *hospreport.PDFCanvas, s string, w float64) string {
	lines := c.SplitText(s, w)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
