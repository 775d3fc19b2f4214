package hospreport

// Content is one block of a Document. The concrete types are Section, Notes,
// Table, Photo and Spacer; Render dispatches on them in declared order.
type Content interface {
	content()
}

// Field is a single label/value line.
type Field struct {
	Label string
	Value string
}

// Section is a bold heading followed by fixed-height field lines.
type Section struct {
	Title  string
	Fields []Field
}

// Notes is a heading followed by free text wrapped to the printable width.
type Notes struct {
	Title string
	Text  string
}

// Column describes one table column. Align is "L" (default), "C" or "R".
type Column struct {
	Header string
	Width  float64
	Align  string
}

// Table is a bordered grid with fixed row heights. Each row must carry one
// cell per column. When Amounts is non-nil it runs parallel to Rows and a
// running total is printed below the table.
type Table struct {
	Title        string
	Columns      []Column
	Rows         [][]string
	Amounts      []*float64
	RowHeight    float64
	HeaderHeight float64
	TotalLabel   string
}

// Photo embeds an image scaled to Height millimetres. Undecodable data is
// replaced by a short notice instead of failing the report.
type Photo struct {
	Caption string
	Data    []byte
	Height  float64
}

// Spacer advances the cursor.
type Spacer struct {
	Height float64
}

func (Section) content() {}
func (Notes) content()   {}
func (Table) content()   {}
func (Photo) content()   {}
func (Spacer) content()  {}

// TableOf builds a Table from records. cells maps one record to its display
// strings; amount, when non-nil, yields the value summed into the running
// total.
func TableOf[T any](title string, cols []Column, records []T, cells func(T) []string, amount func(T) *float64) Table {
	t := Table{Title: title, Columns: cols, Rows: make([][]string, 0, len(records))}
	if amount != nil {
		t.Amounts = make([]*float64, 0, len(records))
	}
	for _, r := range records {
		t.Rows = append(t.Rows, cells(r))
		if amount != nil {
			t.Amounts = append(t.Amounts, amount(r))
		}
	}
	return t
}

// Width returns the sum of the column widths.
func (t Table) Width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// Document is the complete description of one report.
type Document struct {
	Institution string
	Title       string
	Subtitle    string
	QR          string // encoded in the top-right corner when non-empty
	Contents    []Content
	Footer      []string
}
