package hospreport

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/barcode"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const fontFamily = "Helvetica"

// PDFCanvas is a Canvas backed by go-pdf/fpdf using the core Helvetica
// font. Text is converted to Windows-1252, the encoding of the core fonts.
type PDFCanvas struct {
	pdf *fpdf.Fpdf
	enc *encoding.Encoder
	dec *encoding.Decoder
}

// Metadata is written to the PDF information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Keywords string
	Created  time.Time
}

// NewPDFCanvas returns an empty A4 portrait canvas with manual page breaks.
func NewPDFCanvas(meta Metadata, compress bool) *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCreator("hospreport", true)
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Keywords != "" {
		pdf.SetKeywords(meta.Keywords, true)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
	}
	pdf.SetFont(fontFamily, "", 10)
	return &PDFCanvas{
		pdf: pdf,
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		dec: charmap.Windows1252.NewDecoder(),
	}
}

// Fpdf exposes the underlying document for callers that add their own pages.
func (c *PDFCanvas) Fpdf() *fpdf.Fpdf { return c.pdf }

func (c *PDFCanvas) encode(s string) string {
	out, err := c.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (c *PDFCanvas) AddPage()       { c.pdf.AddPage() }
func (c *PDFCanvas) PageCount() int { return c.pdf.PageNo() }
func (c *PDFCanvas) Error() error   { return c.pdf.Error() }

func (c *PDFCanvas) SetFillGray(level int) {
	c.pdf.SetFillColor(level, level, level)
}

func (c *PDFCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.encode(s))
}

func (c *PDFCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.encode(s))
}

// SplitText wraps s to width w with fpdf's greedy splitter. fpdf indexes
// its width table by rune, so the Windows-1252 bytes are handed over as
// runes below 256 and decoded back afterwards.
func (c *PDFCanvas) SplitText(s string, w float64) []string {
	raw := c.encode(strings.ReplaceAll(s, "\r\n", "\n"))
	runes := make([]rune, len(raw))
	for i := 0; i < len(raw); i++ {
		runes[i] = rune(raw[i])
	}
	lines := c.pdf.SplitText(string(runes), w)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		b := make([]byte, 0, len(line))
		for _, r := range line {
			b = append(b, byte(r))
		}
		decoded, err := c.dec.Bytes(b)
		if err != nil {
			decoded = b
		}
		out = append(out, string(decoded))
	}
	return out
}

func (c *PDFCanvas) Rect(x, y, w, h float64, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}
	c.pdf.Rect(x, y, w, h, style)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *PDFCanvas) QRCode(code string, x, y, size float64) {
	key := barcode.RegisterQR(c.pdf, code, qr.M, qr.Unicode)
	barcode.Barcode(c.pdf, key, x, y, size, size, false)
}

func (c *PDFCanvas) Image(name string, img image.Image, x, y, w, h float64) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.pdf.SetError(fmt.Errorf("encoding image %s: %w", name, err))
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, &buf)
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// Output writes the finished PDF to w.
func (c *PDFCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
