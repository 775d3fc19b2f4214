package hospreport

import "math"

// Geometry holds page dimensions and layout constants in millimetres.
type Geometry struct {
	PageWidth     float64
	PageHeight    float64
	Margin        float64 // left and right
	TopY          float64 // cursor position at the top of every page
	BreakY        float64 // rows starting at or below this line go to a new page
	LineHeight    float64 // one field or notes line
	HeadingHeight float64
	BlockGap      float64 // vertical space between contents
	LabelWidth    float64 // value column offset inside a section
	FooterGap     float64
	FooterMinY    float64
	FooterLine    float64 // height of one footer line
	BottomLimit   float64 // nothing is drawn below this line
}

// A4 returns the portrait A4 geometry used by every report.
func A4() Geometry {
	return Geometry{
		PageWidth:     210,
		PageHeight:    297,
		Margin:        15,
		TopY:          20,
		BreakY:        270,
		LineHeight:    7,
		HeadingHeight: 10,
		BlockGap:      4,
		LabelWidth:    55,
		FooterGap:     15,
		FooterMinY:    272,
		FooterLine:    5,
		BottomLimit:   287,
	}
}

// PrintableWidth is the width between the left and right margins.
func (g Geometry) PrintableWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

func (g Geometry) valid() bool {
	return g.PageWidth > 2*g.Margin && g.TopY < g.BreakY && g.BreakY <= g.BottomLimit &&
		g.BottomLimit <= g.PageHeight && g.LineHeight > 0
}

// Cursor is the vertical layout position. Page is 1-based.
type Cursor struct {
	Y    float64
	Page int
}

// Advance moves the cursor down by dy on the same page.
func (c Cursor) Advance(dy float64) Cursor {
	return Cursor{Y: c.Y + dy, Page: c.Page}
}

// NeedsBreak reports whether the next row or line must start a new page.
// A row landing exactly on BreakY breaks.
func (g Geometry) NeedsBreak(c Cursor) bool {
	return c.Y >= g.BreakY
}

// Fits reports whether a block of height h starting at c ends above BreakY.
func (g Geometry) Fits(c Cursor, h float64) bool {
	return c.Y+h <= g.BreakY
}

// NextPage returns the cursor at the top of the following page.
func (g Geometry) NextPage(c Cursor) Cursor {
	return Cursor{Y: g.TopY, Page: c.Page + 1}
}

// FooterY places the footer after the content but never above FooterMinY,
// so short reports keep their footer near the bottom of the page.
func (g Geometry) FooterY(c Cursor) float64 {
	return math.Max(c.Y+g.FooterGap, g.FooterMinY)
}

// RowsPerPage is how many rows of height rowH fit between TopY and BreakY
// under the break-before rule.
func (g Geometry) RowsPerPage(rowH float64) int {
	if rowH <= 0 {
		return 0
	}
	return int(math.Ceil((g.BreakY - g.TopY) / rowH))
}

// TablePages returns the number of pages spanned by n rows of height rowH
// that start at TopY.
func (g Geometry) TablePages(n int, rowH float64) int {
	per := g.RowsPerPage(rowH)
	if n <= 0 || per <= 0 {
		return 1
	}
	return 1 + (n-1)/per
}
