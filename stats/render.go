package stats

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 86, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Report renders technician statistics.
type Report struct {
	Institution string
	Formatter   *format.Formatter
	Now         func() time.Time
}

// NewReport returns a Report with pt-BR formatting.
func NewReport(institution string) *Report {
	return &Report{Institution: institution, Formatter: format.New(), Now: time.Now}
}

// Filename returns tecnico_<slug of the name>_<date>.pdf.
func (r *Report) Filename(t Technician) string {
	return hospreport.Filename("tecnico", format.Slug(t.Nome), r.now())
}

func (r *Report) now() time.Time {
	if r.Now == nil {
		return time.Now().In(r.Formatter.Location)
	}
	return r.Now().In(r.Formatter.Location)
}

// Render returns the PDF bytes of the statistics report for t.
func (r *Report) Render(t Technician) ([]byte, error) {
	f := r.Formatter
	now := r.now()
	sum := Summarize(t.Ordens, f.ZeroPolicy)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estatísticas do Técnico "+t.Nome, true).
		WithAuthor(r.Institution, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(r.headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cardsRow(sum))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Valor total em manutenções: "+totalText(f, sum.Valor), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
		}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(ordersHeaderRow())
	m.AddRows(orderRows(t, f)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Gerado em "+f.DateTime(now), props.Text{Size: 7, Align: align.Center, Color: colorGray}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("stats: generating document: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Report) headerRow(t Technician) core.Row {
	periodo := t.Periodo
	if periodo == "" {
		periodo = "Todo o período"
	}
	return row.New(24).Add(
		col.New(9).Add(
			text.New(r.Institution, props.Text{Size: 9, Color: colorGray, Top: 1}),
			text.New("Estatísticas do Técnico", props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 6,
			}),
			text.New(format.TextString(t.Nome), props.Text{Style: fontstyle.Bold, Size: 11, Top: 14}),
			text.New("Período: "+periodo, props.Text{Size: 8, Color: colorGray, Top: 19}),
		),
		col.New(3).Add(code.NewQr(fmt.Sprintf("tecnico:%d", t.ID), props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

func cardsRow(s Summary) core.Row {
	card := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 3}),
			text.New(fmt.Sprint(n), props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 9,
			}),
		)
	}
	return row.New(22).Add(
		card("Total de OS", s.Total),
		card("Concluídas", s.Concluidas),
		card("Em andamento", s.EmAndamento),
		card("Pendentes", s.Pendentes),
	)
}

func ordersHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("OS", 1, align.Left),
		h("Abertura", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Status", 3, align.Left),
		h("Valor", 2, align.Right),
	)
}

func orderRows(t Technician, f *format.Formatter) []core.Row {
	if len(t.Ordens) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma ordem de serviço no período.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		))}
	}
	rows := make([]core.Row, 0, len(t.Ordens))
	for _, o := range t.Ordens {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(o.ID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.Date(o.DataAbertura), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(format.Text(o.Descricao), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(format.Text(o.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.Currency(o.ValorManutencao), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalText(f *format.Formatter, t format.Total) string {
	if !t.Accumulated() {
		return format.Placeholder
	}
	return f.Amount(t.Sum)
}
