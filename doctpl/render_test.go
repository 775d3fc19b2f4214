package doctpl

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/lvillar/hospreport"
)

func TestRenderMinimalDocument(t *testing.T) {
	var buf bytes.Buffer
	res, err := Render(&buf, []byte(`{"title": "Vazio", "contents": []}`))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
}

func TestParseAllElementTypes(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Bytes())

	tpl := `{
		"institution": "Hospital Municipal",
		"title": "Inventário de Mobiliário",
		"qr": "MOB-2024",
		"footer": ["Setor de Patrimônio"],
		"contents": [
			{"type": "section", "title": "Dados Gerais", "fields": [{"label": "Setor", "value": "UTI"}]},
			{"type": "heading", "text": "Itens"},
			{"type": "paragraph", "text": "Levantamento anual."},
			{"type": "list", "title": "Pendências", "items": ["Etiquetar", "Fotografar"], "ordered": true},
			{"type": "table", "columns": [{"header": "Item", "width": 40}, {"header": "Descrição"}, {"header": "Valor", "width": 30, "align": "r"}],
			 "rows": [["CAD-01", "Cadeira", "R$ 350,00"]], "amounts": [350]},
			{"type": "photo", "src": "` + src + `", "caption": "Foto"},
			{"type": "spacer", "height": 5}
		]
	}`
	doc, err := Parse([]byte(tpl))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Institution != "Hospital Municipal" || doc.QR != "MOB-2024" || len(doc.Footer) != 1 {
		t.Errorf("header fields not carried: %+v", doc)
	}
	if len(doc.Contents) != 7 {
		t.Fatalf("contents = %d", len(doc.Contents))
	}
	if n := doc.Contents[3].(hospreport.Notes); n.Text != "1. Etiquetar\n2. Fotografar" {
		t.Errorf("list text = %q", n.Text)
	}
	tbl := doc.Contents[4].(hospreport.Table)
	if tbl.Columns[1].Width != 110 || tbl.Columns[2].Align != "R" {
		t.Errorf("columns = %+v", tbl.Columns)
	}
	if tbl.Width() != hospreport.A4().PrintableWidth() {
		t.Errorf("auto column should fill the page, width %v", tbl.Width())
	}
	if p := doc.Contents[5].(hospreport.Photo); !bytes.Equal(p.Data, img.Bytes()) {
		t.Error("photo data not decoded")
	}
}

func TestRenderTableTotal(t *testing.T) {
	tpl := `{"title": "Custos", "contents": [
		{"type": "table", "title": "Manutenções", "columns": [{"header": "OS", "width": 30}, {"header": "Valor", "width": 40}],
		 "rows": [["1", "R$ 10,50"], ["2", "-"], ["3", "R$ 22,25"], ["4", "-"]],
		 "amounts": [10.50, null, 22.25, 0]}
	]}`
	var buf bytes.Buffer
	res, err := Render(&buf, []byte(tpl), hospreport.WithCompression(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Totals) != 1 || res.Totals[0].Sum != 32.75 {
		t.Errorf("Totals = %+v", res.Totals)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Total: R$ 32,75")) {
		t.Error("total line missing")
	}
}

func TestRenderInvalidJSON(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Render(&buf, []byte("not valid json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestRenderUnknownElementType(t *testing.T) {
	_, err := Parse([]byte(`{"title": "x", "contents": [{"type": "spacer"}, {"type": "hologram"}]}`))
	if err == nil {
		t.Fatal("expected error for unknown element type")
	}
	if !strings.Contains(err.Error(), "contents[1]") || !strings.Contains(err.Error(), `unknown element type "hologram"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want error
	}{
		{"no room for auto", `{"contents": [{"type": "table", "columns": [{"header": "A", "width": 180}, {"header": "B"}]}]}`, hospreport.ErrTableTooWide},
		{"cell count", `{"contents": [{"type": "table", "columns": [{"header": "A", "width": 50}], "rows": [["1", "2"]]}]}`, hospreport.ErrColumnMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := Render(&buf, []byte(tt.tpl))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRenderPhotoRequiresSource(t *testing.T) {
	if _, err := Parse([]byte(`{"contents": [{"type": "photo"}]}`)); err == nil {
		t.Fatal("expected error for photo without src")
	}
	if _, err := Parse([]byte(`{"contents": [{"type": "photo", "src": "%%%"}]}`)); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestHeadingTitle(t *testing.T) {
	doc, err := Parse([]byte(`{"title": "T", "contents": [
		{"type": "heading", "title": "Por título"},
		{"type": "heading", "text": "Por texto"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"Por título", "Por texto"} {
		s, ok := doc.Contents[i].(hospreport.Section)
		if !ok || s.Title != want {
			t.Errorf("contents[%d] = %#v, want heading %q", i, doc.Contents[i], want)
		}
	}
}
