package reports

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/internal/recorder"
)

var day = time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)

func testGenerator() *Generator {
	g := NewGenerator("Hospital Municipal", nil,
		hospreport.WithDocumentID("doc-test"),
		hospreport.WithCompression(false))
	g.Now = func() time.Time { return day }
	return g
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading pdf: %v", err)
	}
	return r.NumPage()
}

func sampleEquipment() Equipment {
	return Equipment{
		ID:          7,
		Nome:        format.String("Monitor multiparâmetro"),
		Patrimonio:  format.String("001234"),
		Fabricante:  format.String("Philips"),
		ValorCompra: format.Float(18500),
		DataCompra:  format.String("2023-05-02"),
		Setor:       &Ref{ID: 3, Nome: "UTI Adulto"},
	}
}

func TestEquipmentWithoutOrders(t *testing.T) {
	var buf bytes.Buffer
	out, err := testGenerator().Equipment(&buf, sampleEquipment())
	if err != nil {
		t.Fatalf("Equipment: %v", err)
	}
	if out.Pages != 1 {
		t.Errorf("Pages = %d, want 1", out.Pages)
	}
	if out.Filename != "equipamento_001234_2026-10-19.pdf" {
		t.Errorf("Filename = %q", out.Filename)
	}
	if out.ID != "doc-test" {
		t.Errorf("ID = %q", out.ID)
	}
	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("not a PDF")
	}
	if n := pageCount(t, data); n != 1 {
		t.Errorf("reader sees %d pages", n)
	}
	if bytes.Contains(data, []byte("Total:")) {
		t.Error("total line printed without work orders")
	}
	if bytes.Contains(data, []byte("Ordens de Servi")) {
		t.Error("work order table drawn without work orders")
	}
	if !bytes.Contains(data, []byte("Gerado em 19/10/2026 09:15")) {
		t.Error("footer missing")
	}
}

func TestEquipmentLayout(t *testing.T) {
	e := sampleEquipment()
	e.OrdensServico = []WorkOrder{
		{ID: 1, Descricao: format.String("Troca de cabo"), Status: format.String("concluída"), ValorManutencao: format.Float(10.50)},
		{ID: 2, Descricao: format.String("Inspeção"), Status: format.String("pendente")},
		{ID: 3, Status: format.String("em andamento"), ValorManutencao: format.Float(22.25)},
		{ID: 4, ValorManutencao: format.Float(0)},
	}
	rec := recorder.New()
	res, err := hospreport.Render(rec, EquipmentDocument(e, format.New()))
	if err != nil {
		t.Fatal(err)
	}
	var qr string
	for _, op := range rec.Ops {
		if op.Kind == "qr" {
			qr = op.Text
		}
	}
	if qr != "001234" {
		t.Errorf("QR payload = %q, want patrimony", qr)
	}
	for _, want := range []string{"Dados Gerais", "Dados de Compra", "Garantia", "Observações", workOrderTitle,
		"R$ 18.500,00", "02/05/2023", "UTI Adulto", "Total: R$ 32,75"} {
		if _, ok := rec.Find(want); !ok {
			t.Errorf("missing %q", want)
		}
	}
	if len(res.Totals) != 1 || res.Totals[0].Count != 2 {
		t.Errorf("Totals = %+v", res.Totals)
	}
}

func TestEquipmentPhoto(t *testing.T) {
	e := sampleEquipment()
	e.Foto = []byte("corrupted")
	rec := recorder.New()
	if _, err := hospreport.Render(rec, EquipmentDocument(e, format.New())); err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Find("(imagem indisponível)"); !ok {
		t.Error("broken photo should not fail the report")
	}
}

func attendees(n int) []Attendee {
	out := make([]Attendee, n)
	for i := range out {
		out[i] = Attendee{
			Nome:  format.String(fmt.Sprintf("Participante %02d", i+1)),
			Cargo: format.String("Técnico de Enfermagem"),
		}
	}
	return out
}

func TestTrainingFortyAttendeesTwoPages(t *testing.T) {
	tr := Training{
		ID:            5,
		Titulo:        format.String("Capacitação NR-32"),
		Data:          format.String("2024-03-15"),
		Local:         format.String("Auditório"),
		Instrutor:     format.String("Ana Souza"),
		TipoDocumento: &Ref{ID: 1, Nome: "Lista de presença"},
		CargaHoraria:  format.Float(4),
		Participantes: attendees(40),
	}
	doc := TrainingDocument(tr, format.New())
	doc.Institution = "Hospital Municipal"

	rec := recorder.New()
	res, err := hospreport.Render(rec, doc)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages != 2 {
		t.Fatalf("Pages = %d, want 2", res.Pages)
	}
	if n := len(rec.Filled()); n != 1 {
		t.Errorf("header drawn %d times, want 1", n)
	}
	if n := rec.Count("Assinatura"); n != 1 {
		t.Errorf("signature header drawn %d times", n)
	}
	first := 0
	for _, s := range rec.Texts(1) {
		if strings.HasPrefix(s, "Participante ") {
			first++
		}
	}
	if first != 16 {
		t.Errorf("%d attendees on page 1, want 16", first)
	}
	if op, ok := rec.Find("Participante 40"); !ok || op.Page != 2 {
		t.Errorf("last attendee on page %d", op.Page)
	}
	if _, ok := rec.Find("Total:"); ok {
		t.Error("attendance list has no total")
	}

	var buf bytes.Buffer
	out, err := testGenerator().Training(&buf, tr)
	if err != nil {
		t.Fatal(err)
	}
	if out.Pages != 2 || pageCount(t, buf.Bytes()) != 2 {
		t.Errorf("generated %d pages", out.Pages)
	}
	if out.Filename != "capacitacao_capacitacao_nr_32_2026-10-19.pdf" {
		t.Errorf("Filename = %q", out.Filename)
	}
}

func TestTrainingDescriptionIsOptional(t *testing.T) {
	tr := Training{Titulo: format.String("Uso de EPI")}
	if doc := TrainingDocument(tr, format.New()); len(doc.Contents) != 2 {
		t.Errorf("contents = %d, want section and table", len(doc.Contents))
	}
	tr.Descricao = format.String("Paramentação e desparamentação.")
	doc := TrainingDocument(tr, format.New())
	if n, ok := doc.Contents[1].(hospreport.Notes); !ok || n.Title != "Descrição" {
		t.Errorf("contents[1] = %#v", doc.Contents[1])
	}
}

func TestFilenames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"patrimony", EquipmentFilename(Equipment{ID: 9, Patrimonio: format.String(" 001234 ")}, day), "equipamento_001234_2026-10-19.pdf"},
		{"id fallback", EquipmentFilename(Equipment{ID: 42, Patrimonio: format.String("  ")}, day), "equipamento_42_2026-10-19.pdf"},
		{"nothing", EquipmentFilename(Equipment{}, day), "equipamento_sem_identificacao_2026-10-19.pdf"},
		{"untitled", TrainingFilename(Training{}, day), "capacitacao_sem_titulo_2026-10-19.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
	e := sampleEquipment()
	if EquipmentFilename(e, day) != EquipmentFilename(e, day) {
		t.Error("filename not deterministic")
	}
}
