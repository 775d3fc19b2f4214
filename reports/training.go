package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
)

const (
	trainingTitle  = "Registro de Capacitação"
	attendeesTitle = "Lista de Presença"
	attendeeRowH   = 9
)

var attendeeColumns = []hospreport.Column{
	{Header: "Nº", Width: 12, Align: "C"},
	{Header: "Nome", Width: 70},
	{Header: "Cargo", Width: 50},
	{Header: "Assinatura", Width: 48},
}

// TrainingDocument lays out t as its event data, the description when
// present and the attendance list with blank signature cells.
func TrainingDocument(t Training, f *format.Formatter) hospreport.Document {
	doc := hospreport.Document{
		Title:    trainingTitle,
		Subtitle: subtitle(t.Titulo),
		Contents: []hospreport.Content{
			hospreport.Section{Title: "Dados da Capacitação", Fields: []hospreport.Field{
				{Label: "Título", Value: format.Text(t.Titulo)},
				{Label: "Data", Value: f.Date(t.Data)},
				{Label: "Local", Value: format.Text(t.Local)},
				{Label: "Instrutor", Value: format.Text(t.Instrutor)},
				{Label: "Tipo de Documento", Value: refName(t.TipoDocumento)},
				{Label: "Carga Horária", Value: f.Hours(t.CargaHoraria)},
				{Label: "Participantes", Value: fmt.Sprint(len(t.Participantes))},
			}},
		},
	}
	if t.Descricao != nil && strings.TrimSpace(*t.Descricao) != "" {
		doc.Contents = append(doc.Contents, hospreport.Notes{Title: "Descrição", Text: *t.Descricao})
	}
	doc.Contents = append(doc.Contents, AttendeeTable(t.Participantes))
	return doc
}

// AttendeeTable numbers attendees from 1 and leaves the signature column
// blank for signing on paper.
func AttendeeTable(attendees []Attendee) hospreport.Table {
	type numbered struct {
		n int
		a Attendee
	}
	rows := make([]numbered, len(attendees))
	for i, a := range attendees {
		rows[i] = numbered{i + 1, a}
	}
	t := hospreport.TableOf(attendeesTitle, attendeeColumns, rows,
		func(r numbered) []string {
			return []string{fmt.Sprint(r.n), format.Text(r.a.Nome), format.Text(r.a.Cargo), ""}
		}, nil)
	t.RowHeight = attendeeRowH
	return t
}

// TrainingFilename returns capacitacao_<slug of the title>_<date>.pdf.
func TrainingFilename(t Training, day time.Time) string {
	title := ""
	if t.Titulo != nil {
		title = *t.Titulo
	}
	return hospreport.Filename("capacitacao", format.Slug(title), day)
}
