// Package recorder provides an in-memory drawing surface that records every
// call, for asserting layout without parsing PDF output.
package recorder

import (
	"errors"
	"image"
	"strings"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string // page, text, rect, line, qr, image
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Style string
	Size  float64
	Fill  bool
}

// Canvas records drawing calls. Every rune is CharWidth millimetres wide at
// font size 10, scaled linearly with the font size.
type Canvas struct {
	Ops       []Op
	CharWidth float64
	Err       error

	pages int
	style string
	size  float64
}

// New returns an empty recorder.
func New() *Canvas {
	return &Canvas{CharWidth: 2, size: 10}
}

func (c *Canvas) record(op Op) {
	op.Page = c.pages
	c.Ops = append(c.Ops, op)
}

func (c *Canvas) AddPage() {
	c.pages++
	c.record(Op{Kind: "page"})
}

func (c *Canvas) PageCount() int { return c.pages }

func (c *Canvas) SetFont(style string, size float64) {
	c.style, c.size = style, size
}

func (c *Canvas) SetFillGray(int) {}

func (c *Canvas) Text(x, y float64, s string) {
	c.record(Op{Kind: "text", X: x, Y: y, Text: s, Style: c.style, Size: c.size})
}

func (c *Canvas) StringWidth(s string) float64 {
	return float64(len([]rune(s))) * c.CharWidth * c.size / 10
}

// SplitText wraps greedily on spaces; words longer than w are cut.
func (c *Canvas) SplitText(s string, w float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for c.StringWidth(word) > w && len([]rune(word)) > 1 {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				n := int(w / (c.CharWidth * c.size / 10))
				if n < 1 {
					n = 1
				}
				r := []rune(word)
				out = append(out, string(r[:n]))
				word = string(r[n:])
			}
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if c.StringWidth(candidate) <= w {
				line = candidate
				continue
			}
			out = append(out, line)
			line = word
		}
		out = append(out, line)
	}
	return out
}

func (c *Canvas) Rect(x, y, w, h float64, fill bool) {
	c.record(Op{Kind: "rect", X: x, Y: y, W: w, H: h, Fill: fill})
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.record(Op{Kind: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (c *Canvas) QRCode(code string, x, y, size float64) {
	c.record(Op{Kind: "qr", X: x, Y: y, W: size, H: size, Text: code})
}

func (c *Canvas) Image(name string, img image.Image, x, y, w, h float64) {
	if img == nil {
		c.Err = errors.New("recorder: nil image")
		return
	}
	c.record(Op{Kind: "image", X: x, Y: y, W: w, H: h, Text: name})
}

func (c *Canvas) Error() error { return c.Err }

// Texts returns every recorded text on page (0 for all pages).
func (c *Canvas) Texts(page int) []string {
	var out []string
	for _, op := range c.Ops {
		if op.Kind == "text" && (page == 0 || op.Page == page) {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op containing substr.
func (c *Canvas) Find(substr string) (Op, bool) {
	for _, op := range c.Ops {
		if op.Kind == "text" && strings.Contains(op.Text, substr) {
			return op, true
		}
	}
	return Op{}, false
}

// Count returns how many text ops equal s exactly.
func (c *Canvas) Count(s string) int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == "text" && op.Text == s {
			n++
		}
	}
	return n
}

// Filled returns the filled rectangles, i.e. table header bands.
func (c *Canvas) Filled() []Op {
	var out []Op
	for _, op := range c.Ops {
		if op.Kind == "rect" && op.Fill {
			out = append(out, op)
		}
	}
	return out
}
