// Package doctpl describes hospreport documents as JSON templates, so a new
// report type can be added without writing layout code.
//
// Example JSON:
//
//	{
//	  "institution": "Hospital Municipal",
//	  "title": "Inventário de Mobiliário",
//	  "contents": [
//	    {"type": "section", "title": "Dados Gerais", "fields": [
//	      {"label": "Setor", "value": "UTI Adulto"}
//	    ]},
//	    {"type": "table", "title": "Itens", "columns": [
//	      {"header": "Item", "width": 40},
//	      {"header": "Descrição"}
//	    ], "rows": [["CAD-01", "Cadeira giratória"]]}
//	  ]
//	}
package doctpl

// Template is the top-level JSON description of a report.
type Template struct {
	Institution  string    `json:"institution,omitempty"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	QR           string    `json:"qr,omitempty"`
	Author       string    `json:"author,omitempty"`
	RepeatHeader bool      `json:"repeatHeader,omitempty"`
	Footer       []string  `json:"footer,omitempty"`
	Contents     []Element `json:"contents"`
}

// Element is one block of the report. Type selects which fields apply:
// section, heading (title, or text), notes (alias paragraph), list, table,
// photo, spacer.
type Element struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`

	// Section
	Fields []Field `json:"fields,omitempty"`

	// Notes, paragraph
	Text string `json:"text,omitempty"`

	// List
	Items   []string `json:"items,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`

	// Table
	Columns      []TableColumn `json:"columns,omitempty"`
	Rows         [][]string    `json:"rows,omitempty"`
	Amounts      []*float64    `json:"amounts,omitempty"` // parallel to rows; enables the total line
	RowHeight    float64       `json:"rowHeight,omitempty"`
	HeaderHeight float64       `json:"headerHeight,omitempty"`
	TotalLabel   string        `json:"totalLabel,omitempty"`

	// Photo: base64 data, optionally as a data: URI
	Src     string `json:"src,omitempty"`
	Caption string `json:"caption,omitempty"`

	// Photo, spacer
	Height float64 `json:"height,omitempty"`
}

// Field is a label/value line of a section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TableColumn defines a column in a table element.
type TableColumn struct {
	Header string  `json:"header"`
	Width  float64 `json:"width,omitempty"` // 0 = share of the remaining width
	Align  string  `json:"align,omitempty"` // L, C, R
}
