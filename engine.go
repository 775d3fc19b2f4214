package hospreport

import (
	"fmt"
	"math"
	"time"

	"github.com/lvillar/hospreport/format"
)

// Result describes a rendered document.
type Result struct {
	ID      string
	Pages   int
	Created time.Time
	Totals  []format.Total // one per table that declares amounts, in order
}

// Render validates doc and draws it on c. It adds the first page itself.
func Render(c Canvas, doc Document, opts ...Option) (Result, error) {
	return render(c, doc, newConfig(opts))
}

type renderer struct {
	canvas Canvas
	geo    Geometry
	fmt    *format.Formatter
	repeat bool
	totals []format.Total
}

func render(c Canvas, doc Document, cfg *config) (Result, error) {
	if !cfg.geometry.valid() {
		return Result{}, ErrInvalidGeometry
	}
	if err := Validate(doc, cfg.geometry); err != nil {
		return Result{}, err
	}
	now := cfg.now()
	r := &renderer{
		canvas: c,
		geo:    cfg.geometry,
		fmt:    cfg.formatter,
		repeat: cfg.repeatHeader,
	}

	c.AddPage()
	cur := r.titleBlock(Cursor{Y: r.geo.TopY, Page: 1}, doc)
	drawn := 0
	for i, content := range doc.Contents {
		if t, ok := content.(Table); ok && len(t.Rows) == 0 {
			continue
		}
		if drawn > 0 {
			cur = cur.Advance(r.geo.BlockGap)
		}
		cur = r.draw(cur, i, content)
		drawn++
	}

	footer := append(append([]string(nil), doc.Footer...),
		fmt.Sprintf("Gerado em %s · Documento %s", r.fmt.DateTime(now), cfg.id))
	r.footer(cur, footer)

	if err := c.Error(); err != nil {
		return Result{}, fmt.Errorf("hospreport: drawing: %w", err)
	}
	return Result{ID: cfg.id, Pages: c.PageCount(), Created: now, Totals: r.totals}, nil
}

func (r *renderer) draw(cur Cursor, idx int, content Content) Cursor {
	switch c := content.(type) {
	case Section:
		return r.section(cur, c)
	case Notes:
		return r.notes(cur, c)
	case Table:
		return r.table(cur, c)
	case Photo:
		return r.photo(cur, idx, c)
	case Spacer:
		return r.spacer(cur, c)
	}
	return cur
}

func (r *renderer) newPage(cur Cursor) Cursor {
	r.canvas.AddPage()
	return r.geo.NextPage(cur)
}

func (r *renderer) titleBlock(cur Cursor, doc Document) Cursor {
	g, c := r.geo, r.canvas
	top := cur.Y
	if doc.Institution != "" {
		c.SetFont(Bold, 10)
		c.Text(g.Margin, cur.Y+4, doc.Institution)
		cur = cur.Advance(6)
	}
	c.SetFont(Bold, 16)
	c.Text(g.Margin, cur.Y+6, doc.Title)
	cur = cur.Advance(9)
	if doc.Subtitle != "" {
		c.SetFont(Regular, 10)
		c.Text(g.Margin, cur.Y+4, doc.Subtitle)
		cur = cur.Advance(6)
	}
	if doc.QR != "" {
		const size = 24.0
		c.QRCode(doc.QR, g.PageWidth-g.Margin-size, top-5, size)
		cur.Y = math.Max(cur.Y, top-5+size)
	}
	cur = cur.Advance(2)
	c.Line(g.Margin, cur.Y, g.PageWidth-g.Margin, cur.Y)
	return cur.Advance(6)
}

// heading draws a block title, moving to a new page first when the title and
// keep millimetres of following content would not fit.
func (r *renderer) heading(cur Cursor, title string, keep float64) Cursor {
	if title == "" {
		if !r.geo.Fits(cur, keep) {
			cur = r.newPage(cur)
		}
		return cur
	}
	if !r.geo.Fits(cur, r.geo.HeadingHeight+keep) {
		cur = r.newPage(cur)
	}
	r.canvas.SetFont(Bold, 12)
	r.canvas.Text(r.geo.Margin, cur.Y+7, title)
	return cur.Advance(r.geo.HeadingHeight)
}

func (r *renderer) section(cur Cursor, s Section) Cursor {
	cur = r.heading(cur, s.Title, r.geo.LineHeight)
	for _, f := range s.Fields {
		cur = r.field(cur, f)
	}
	return cur
}

func (r *renderer) field(cur Cursor, f Field) Cursor {
	g, c := r.geo, r.canvas
	if g.NeedsBreak(cur) {
		cur = r.newPage(cur)
	}
	c.SetFont(Bold, 10)
	c.Text(g.Margin, cur.Y+5, f.Label+":")
	c.SetFont(Regular, 10)
	c.Text(g.Margin+g.LabelWidth, cur.Y+5, firstLine(c, format.TextString(f.Value), g.PrintableWidth()-g.LabelWidth))
	return cur.Advance(g.LineHeight)
}

func (r *renderer) notes(cur Cursor, n Notes) Cursor {
	g, c := r.geo, r.canvas
	cur = r.heading(cur, n.Title, g.LineHeight)
	c.SetFont(Regular, 10)
	for _, line := range c.SplitText(format.TextString(n.Text), g.PrintableWidth()) {
		if g.NeedsBreak(cur) {
			cur = r.newPage(cur)
			c.SetFont(Regular, 10)
		}
		c.Text(g.Margin, cur.Y+5, line)
		cur = cur.Advance(g.LineHeight)
	}
	return cur
}

func (r *renderer) spacer(cur Cursor, s Spacer) Cursor {
	if s.Height <= 0 {
		return cur
	}
	next := cur.Advance(s.Height)
	if next.Y > r.geo.BreakY {
		return r.newPage(cur)
	}
	return next
}

func (r *renderer) footer(cur Cursor, lines []string) Cursor {
	g, c := r.geo, r.canvas
	h := float64(len(lines)) * g.FooterLine
	if cur.Y+g.FooterGap+h > g.BottomLimit {
		cur = r.newPage(cur)
	}
	// Tall footers move up so the last line stays above BottomLimit.
	y := min(g.FooterY(cur), g.BottomLimit-h)
	c.Line(g.Margin, y, g.PageWidth-g.Margin, y)
	c.SetFont(Regular, 8)
	for i, line := range lines {
		w := c.StringWidth(line)
		c.Text((g.PageWidth-w)/2, y+float64(i+1)*g.FooterLine-1, line)
	}
	return Cursor{Y: y + h, Page: cur.Page}
}

// firstLine returns the first wrapped line of s at width w.
func firstLine(c Canvas, s string, w float64) string {
	lines := c.SplitText(s, w)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// Validate checks the caller contract of every table in doc.
func Validate(doc Document, g Geometry) error {
	for i, content := range doc.Contents {
		op := fmt.Sprintf("contents[%d]", i)
		switch c := content.(type) {
		case Section, Notes, Photo, Spacer:
		case Table:
			if err := validateTable(op, c, g); err != nil {
				return err
			}
		default:
			return newRenderError(op, ErrUnknownContent)
		}
	}
	return nil
}

func validateTable(op string, t Table, g Geometry) error {
	if len(t.Columns) == 0 {
		return newRenderError(op, fmt.Errorf("%w: no columns", ErrColumnMismatch))
	}
	for i, col := range t.Columns {
		if col.Width <= 0 || math.IsNaN(col.Width) {
			return newRenderError(fmt.Sprintf("%s.columns[%d]", op, i), ErrInvalidColumn)
		}
	}
	if t.Width() > g.PrintableWidth()+0.01 {
		return newRenderError(op, fmt.Errorf("%w: %.2f > %.2f", ErrTableTooWide, t.Width(), g.PrintableWidth()))
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return newRenderError(fmt.Sprintf("%s.rows[%d]", op, i),
				fmt.Errorf("%w: %d cells for %d columns", ErrColumnMismatch, len(row), len(t.Columns)))
		}
	}
	if t.Amounts != nil && len(t.Amounts) != len(t.Rows) {
		return newRenderError(op, fmt.Errorf("%w: %d amounts for %d rows", ErrColumnMismatch, len(t.Amounts), len(t.Rows)))
	}
	return nil
}
