package hospreport

import (
	"fmt"
	"math"
	"testing"

	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/internal/recorder"
)

func TestCursorAdvanceIsPure(t *testing.T) {
	c := Cursor{Y: 20, Page: 1}
	next := c.Advance(7)
	if c.Y != 20 || next.Y != 27 || next.Page != 1 {
		t.Fatalf("Advance mutated or miscomputed: %+v -> %+v", c, next)
	}
}

func TestNeedsBreakAtThreshold(t *testing.T) {
	g := A4()
	if g.NeedsBreak(Cursor{Y: g.BreakY - 0.01}) {
		t.Error("row above the threshold must stay on the page")
	}
	if !g.NeedsBreak(Cursor{Y: g.BreakY}) {
		t.Error("row landing exactly on the threshold must break")
	}
	next := g.NextPage(Cursor{Y: 280, Page: 3})
	if next.Y != g.TopY || next.Page != 4 {
		t.Errorf("NextPage = %+v", next)
	}
}

func TestFooterY(t *testing.T) {
	g := A4()
	if got := g.FooterY(Cursor{Y: 100}); got != g.FooterMinY {
		t.Errorf("short content: footer at %v, want %v", got, g.FooterMinY)
	}
	if got := g.FooterY(Cursor{Y: 265}); got != 265+g.FooterGap {
		t.Errorf("long content: footer at %v", got)
	}
}

// renderRows draws a table whose first row starts exactly at TopY and
// returns the number of pages used.
func renderRows(t *testing.T, n int, rowH float64) int {
	t.Helper()
	g := A4()
	rec := recorder.New()
	r := &renderer{canvas: rec, geo: g, fmt: format.New()}
	rec.AddPage()
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i + 1)}
	}
	tbl := Table{Columns: []Column{{Header: "#", Width: 20}}, Rows: rows, RowHeight: rowH}
	r.table(Cursor{Y: g.TopY - defaultHeaderHeight, Page: 1}, tbl)
	return rec.PageCount()
}

func TestTablePaginationBoundary(t *testing.T) {
	g := A4()
	const rowH = 10.0
	per := g.RowsPerPage(rowH)
	if per != 25 {
		t.Fatalf("RowsPerPage = %d, want 25", per)
	}
	tests := []struct {
		rows  int
		pages int
	}{
		{1, 1},
		{24, 1},
		{25, 1}, // last row ends exactly on the threshold
		{26, 2}, // row 26 starts exactly on the threshold
		{50, 2},
		{51, 3},
	}
	for _, tt := range tests {
		if got := renderRows(t, tt.rows, rowH); got != tt.pages {
			t.Errorf("%d rows: %d pages, want %d", tt.rows, got, tt.pages)
		}
	}
}

func TestTablePagesMatchesRenderer(t *testing.T) {
	g := A4()
	for _, rowH := range []float64{7, 8, 9, 10} {
		for n := 1; n <= 90; n++ {
			want := g.TablePages(n, rowH)
			if got := renderRows(t, n, rowH); got != want {
				t.Fatalf("rowH=%v n=%d: rendered %d pages, TablePages says %d", rowH, n, got, want)
			}
		}
	}
}

func TestTablePagesClosedForm(t *testing.T) {
	g := A4()
	const rowH = 10.0
	span := g.BreakY - g.TopY
	// 1 + floor(N*H/(T-S)) agrees with the renderer away from exact multiples.
	for _, n := range []int{1, 10, 24, 26, 40, 49, 51, 74} {
		closed := 1 + int(math.Floor(float64(n)*rowH/span))
		if got := g.TablePages(n, rowH); got != closed {
			t.Errorf("n=%d: TablePages=%d closed form=%d", n, got, closed)
		}
	}
}
