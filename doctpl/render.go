package doctpl

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/lvillar/hospreport"
)

// Decode parses a JSON template.
func Decode(data []byte) (*Template, error) {
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	return &tpl, nil
}

// Parse decodes a JSON template into a document laid out on A4.
func Parse(data []byte) (hospreport.Document, error) {
	tpl, err := Decode(data)
	if err != nil {
		return hospreport.Document{}, err
	}
	return tpl.Document(hospreport.A4())
}

// Render parses a JSON template and writes the resulting PDF to w.
// Template settings (author, repeated headers) are applied before opts.
func Render(w io.Writer, data []byte, opts ...hospreport.Option) (hospreport.Result, error) {
	tpl, err := Decode(data)
	if err != nil {
		return hospreport.Result{}, err
	}
	return RenderTemplate(w, tpl, opts...)
}

// RenderTemplate renders a decoded template to a PDF written to w.
func RenderTemplate(w io.Writer, tpl *Template, opts ...hospreport.Option) (hospreport.Result, error) {
	doc, err := tpl.Document(hospreport.A4())
	if err != nil {
		return hospreport.Result{}, err
	}
	all := []hospreport.Option{hospreport.WithRepeatHeader(tpl.RepeatHeader)}
	if tpl.Author != "" {
		all = append(all, hospreport.WithAuthor(tpl.Author))
	}
	res, err := hospreport.Generate(w, doc, append(all, opts...)...)
	if err != nil {
		return res, fmt.Errorf("doctpl: %w", err)
	}
	return res, nil
}

// Document converts the template into engine content. Auto-width table
// columns share the part of g's printable width left by the fixed ones.
func (t *Template) Document(g hospreport.Geometry) (hospreport.Document, error) {
	doc := hospreport.Document{
		Institution: t.Institution,
		Title:       t.Title,
		Subtitle:    t.Subtitle,
		QR:          t.QR,
		Footer:      t.Footer,
		Contents:    make([]hospreport.Content, 0, len(t.Contents)),
	}
	for i, elem := range t.Contents {
		c, err := convert(elem, g)
		if err != nil {
			return hospreport.Document{}, fmt.Errorf("doctpl: contents[%d]: %w", i, err)
		}
		doc.Contents = append(doc.Contents, c)
	}
	return doc, nil
}

func convert(elem Element, g hospreport.Geometry) (hospreport.Content, error) {
	switch strings.ToLower(elem.Type) {
	case "section":
		fields := make([]hospreport.Field, len(elem.Fields))
		for i, f := range elem.Fields {
			fields[i] = hospreport.Field{Label: f.Label, Value: f.Value}
		}
		return hospreport.Section{Title: elem.Title, Fields: fields}, nil
	case "heading":
		title := elem.Title
		if title == "" {
			title = elem.Text
		}
		return hospreport.Section{Title: title}, nil
	case "notes", "paragraph":
		return hospreport.Notes{Title: elem.Title, Text: elem.Text}, nil
	case "list":
		return hospreport.Notes{Title: elem.Title, Text: listText(elem)}, nil
	case "table":
		return convertTable(elem, g)
	case "photo", "image":
		data, err := decodeImage(elem.Src)
		if err != nil {
			return nil, err
		}
		return hospreport.Photo{Caption: elem.Caption, Data: data, Height: elem.Height}, nil
	case "spacer":
		return hospreport.Spacer{Height: elem.Height}, nil
	default:
		return nil, fmt.Errorf("unknown element type %q", elem.Type)
	}
}

func listText(elem Element) string {
	lines := make([]string, len(elem.Items))
	for i, item := range elem.Items {
		if elem.Ordered {
			lines[i] = fmt.Sprintf("%d. %s", i+1, item)
		} else {
			lines[i] = "- " + item
		}
	}
	return strings.Join(lines, "\n")
}

func convertTable(elem Element, g hospreport.Geometry) (hospreport.Table, error) {
	if len(elem.Columns) == 0 {
		return hospreport.Table{}, fmt.Errorf("table element requires 'columns'")
	}
	fixed, auto := 0.0, 0
	for _, c := range elem.Columns {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			auto++
		}
	}
	share := 0.0
	if auto > 0 {
		share = (g.PrintableWidth() - fixed) / float64(auto)
		if share <= 0 {
			return hospreport.Table{}, fmt.Errorf("%w: no width left for %d auto columns", hospreport.ErrTableTooWide, auto)
		}
	}
	cols := make([]hospreport.Column, len(elem.Columns))
	for i, c := range elem.Columns {
		w := c.Width
		if w <= 0 {
			w = share
		}
		cols[i] = hospreport.Column{Header: c.Header, Width: w, Align: strings.ToUpper(c.Align)}
	}
	return hospreport.Table{
		Title:        elem.Title,
		Columns:      cols,
		Rows:         elem.Rows,
		Amounts:      elem.Amounts,
		RowHeight:    elem.RowHeight,
		HeaderHeight: elem.HeaderHeight,
		TotalLabel:   elem.TotalLabel,
	}, nil
}

func decodeImage(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("photo element requires 'src' field")
	}
	if strings.HasPrefix(src, "data:") {
		i := strings.Index(src, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		src = src[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(src))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}
	return data, nil
}
