package reports

import (
	"io"
	"time"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/format"
)

// Output describes a generated report file.
type Output struct {
	Filename string
	Pages    int
	ID       string
}

// Generator renders reports with a shared institution header, footer and
// engine options.
type Generator struct {
	Institution string
	Footer      []string
	Formatter   *format.Formatter
	Now         func() time.Time
	Options     []hospreport.Option
}

// NewGenerator returns a Generator using f (pt-BR defaults when nil).
func NewGenerator(institution string, f *format.Formatter, opts ...hospreport.Option) *Generator {
	if f == nil {
		f = format.New()
	}
	return &Generator{
		Institution: institution,
		Footer:      []string{"Documento gerado automaticamente pelo sistema de gestão hospitalar."},
		Formatter:   f,
		Now:         time.Now,
		Options:     opts,
	}
}

// Equipment writes the equipment report for e to w.
func (g *Generator) Equipment(w io.Writer, e Equipment) (Output, error) {
	now := g.now()
	return g.generate(w, EquipmentDocument(e, g.Formatter), EquipmentFilename(e, now), now)
}

// Training writes the training record for t to w.
func (g *Generator) Training(w io.Writer, t Training) (Output, error) {
	now := g.now()
	return g.generate(w, TrainingDocument(t, g.Formatter), TrainingFilename(t, now), now)
}

// Document writes an arbitrary document, named with prefix and key.
func (g *Generator) Document(w io.Writer, doc hospreport.Document, prefix, key string) (Output, error) {
	now := g.now()
	return g.generate(w, doc, hospreport.Filename(prefix, key, now), now)
}

func (g *Generator) now() time.Time {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return now().In(g.Formatter.Location)
}

func (g *Generator) generate(w io.Writer, doc hospreport.Document, name string, now time.Time) (Output, error) {
	if doc.Institution == "" {
		doc.Institution = g.Institution
	}
	if len(doc.Footer) == 0 {
		doc.Footer = g.Footer
	}
	opts := append(append([]hospreport.Option(nil), g.Options...),
		hospreport.WithFormatter(g.Formatter),
		hospreport.WithClock(func() time.Time { return now }),
	)
	res, err := hospreport.Generate(w, doc, opts...)
	if err != nil {
		return Output{}, err
	}
	return Output{Filename: name, Pages: res.Pages, ID: res.ID}, nil
}
