package hospreport

import "github.com/lvillar/hospreport/format"

const (
	defaultRowHeight    = 8.0
	defaultHeaderHeight = 8.0
	cellPadding         = 1.5
	headerFill          = 230
)

// table draws the header, then one fixed-height row per record. A row whose
// top reaches BreakY starts a new page first; long cells keep only their
// first wrapped line.
func (r *renderer) table(cur Cursor, t Table) Cursor {
	g := r.geo
	rowH := t.RowHeight
	if rowH <= 0 {
		rowH = defaultRowHeight
	}
	headH := t.HeaderHeight
	if headH <= 0 {
		headH = defaultHeaderHeight
	}

	cur = r.heading(cur, t.Title, headH+rowH)
	cur = r.tableHeader(cur, t, headH)

	total := format.Total{Policy: r.fmt.ZeroPolicy}
	for i, row := range t.Rows {
		if g.NeedsBreak(cur) {
			cur = r.newPage(cur)
			if r.repeat {
				cur = r.tableHeader(cur, t, headH)
			}
		}
		r.tableRow(cur, t.Columns, row, rowH)
		if t.Amounts != nil {
			total.Add(t.Amounts[i])
		}
		cur = cur.Advance(rowH)
	}

	if t.Amounts == nil {
		return cur
	}
	r.totals = append(r.totals, total)
	if !total.Accumulated() {
		return cur
	}
	return r.totalLine(cur, t, total)
}

func (r *renderer) tableHeader(cur Cursor, t Table, headH float64) Cursor {
	g, c := r.geo, r.canvas
	c.SetFillGray(headerFill)
	c.Rect(g.Margin, cur.Y, t.Width(), headH, true)
	c.SetFont(Bold, 9)
	x := g.Margin
	for _, col := range t.Columns {
		c.Text(x+cellPadding, cur.Y+headH*0.65, col.Header)
		x += col.Width
	}
	return cur.Advance(headH)
}

func (r *renderer) tableRow(cur Cursor, cols []Column, cells []string, rowH float64) {
	c := r.canvas
	c.SetFont(Regular, 9)
	x := r.geo.Margin
	for i, col := range cols {
		c.Rect(x, cur.Y, col.Width, rowH, false)
		text := firstLine(c, cells[i], col.Width-2*cellPadding)
		tx := x + cellPadding
		switch col.Align {
		case "R":
			tx = x + col.Width - cellPadding - c.StringWidth(text)
		case "C":
			tx = x + (col.Width-c.StringWidth(text))/2
		}
		c.Text(tx, cur.Y+rowH*0.65, text)
		x += col.Width
	}
}

func (r *renderer) totalLine(cur Cursor, t Table, total format.Total) Cursor {
	g, c := r.geo, r.canvas
	if g.NeedsBreak(cur) {
		cur = r.newPage(cur)
	}
	label := t.TotalLabel
	if label == "" {
		label = "Total"
	}
	text := label + ": " + r.fmt.Amount(total.Sum)
	c.SetFont(Bold, 10)
	c.Text(g.Margin+t.Width()-c.StringWidth(text), cur.Y+6, text)
	return cur.Advance(g.LineHeight)
}
