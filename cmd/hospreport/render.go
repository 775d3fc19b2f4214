package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/lvillar/hospreport"
	"github.com/lvillar/hospreport/doctpl"
	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/labels"
	"github.com/lvillar/hospreport/pageops"
	"github.com/lvillar/hospreport/reports"
)

// recordFlags are shared by the commands that render one backend record.
type recordFlags struct {
	config *string
	id     *string
	file   *string
	out    *string
}

func newRecordFlags(fs *flag.FlagSet) recordFlags {
	return recordFlags{
		config: fs.String("config", "hospreport.yaml", "configuration file"),
		id:     fs.String("id", "", "record ID to fetch from the backend"),
		file:   fs.String("file", "", "JSON record to render instead of fetching"),
		out:    fs.String("o", "", "output file (default: the report's file name)"),
	}
}

// load fills out from -file, or fetches it with fetch when -id is set.
func (f recordFlags) load(out any, fetch func(id string) error) error {
	switch {
	case *f.file != "":
		data, err := os.ReadFile(*f.file)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing %s: %w", *f.file, err)
		}
		return nil
	case *f.id != "":
		return fetch(*f.id)
	}
	return errors.New("one of -id or -file is required")
}

// write saves data to -o, or to name in the current directory.
func (f recordFlags) write(name string, data []byte) error {
	path := *f.out
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runEquipment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("equipment", flag.ExitOnError)
	rf := newRecordFlags(fs)
	_ = fs.Parse(args)

	a, err := newApp(*rf.config, *rf.file == "")
	if err != nil {
		return err
	}
	var e reports.Equipment
	if err := rf.load(&e, func(id string) (err error) {
		e, err = a.source.Equipment(ctx, id)
		return err
	}); err != nil {
		return err
	}
	var buf bytes.Buffer
	out, err := a.reports.Equipment(&buf, e)
	if err != nil {
		return err
	}
	a.logger.Info("report.generated", "kind", "equipment", "id", out.ID, "pages", out.Pages)
	return rf.write(out.Filename, buf.Bytes())
}

func runTraining(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("training", flag.ExitOnError)
	rf := newRecordFlags(fs)
	_ = fs.Parse(args)

	a, err := newApp(*rf.config, *rf.file == "")
	if err != nil {
		return err
	}
	var t reports.Training
	if err := rf.load(&t, func(id string) (err error) {
		t, err = a.source.Training(ctx, id)
		return err
	}); err != nil {
		return err
	}
	var buf bytes.Buffer
	out, err := a.reports.Training(&buf, t)
	if err != nil {
		return err
	}
	a.logger.Info("report.generated", "kind", "training", "id", out.ID, "pages", out.Pages)
	return rf.write(out.Filename, buf.Bytes())
}

func runTechnician(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("technician", flag.ExitOnError)
	rf := newRecordFlags(fs)
	_ = fs.Parse(args)

	a, err := newApp(*rf.config, true)
	if err != nil {
		return err
	}
	if *rf.id == "" {
		return errors.New("-id is required")
	}
	t, err := a.source.TechnicianOrders(ctx, *rf.id)
	if err != nil {
		return err
	}
	data, err := a.stats.Render(t)
	if err != nil {
		return err
	}
	return rf.write(a.stats.Filename(t), data)
}

func runTemplate(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	rf := newRecordFlags(fs)
	_ = fs.Parse(args)

	if *rf.file == "" {
		return errors.New("-file is required")
	}
	a, err := newApp(*rf.config, false)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(*rf.file)
	if err != nil {
		return err
	}
	tpl, err := doctpl.Decode(data)
	if err != nil {
		return err
	}
	if tpl.Institution == "" {
		tpl.Institution = a.cfg.Report.Institution
	}
	var buf bytes.Buffer
	res, err := doctpl.RenderTemplate(&buf, tpl,
		hospreport.WithFormatter(a.reports.Formatter),
		hospreport.WithAuthor(a.cfg.Report.Author),
	)
	if err != nil {
		return err
	}
	a.logger.Info("report.generated", "kind", "template", "id", res.ID, "pages", res.Pages)
	return rf.write(hospreport.Filename("documento", format.Slug(tpl.Title), res.Created), buf.Bytes())
}

func runLabels(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)
	configPath := fs.String("config", "hospreport.yaml", "configuration file")
	ids := fs.String("ids", "", "comma-separated equipment IDs to fetch")
	file := fs.String("file", "", "JSON array of labels")
	symbology := fs.String("symbology", "qr", "qr, code128 or pdf417")
	skip := fs.Int("skip", 0, "label positions to leave empty on the first sheet")
	border := fs.Bool("border", false, "outline each label")
	out := fs.String("o", "etiquetas.pdf", "output file")
	_ = fs.Parse(args)

	sym, err := labels.ParseSymbology(*symbology)
	if err != nil {
		return err
	}
	var all []labels.Label
	if *ids != "" {
		a, err := newApp(*configPath, true)
		if err != nil {
			return err
		}
		for _, id := range strings.Split(*ids, ",") {
			e, err := a.source.Equipment(ctx, strings.TrimSpace(id))
			if err != nil {
				return err
			}
			all = append(all, labels.FromEquipment(e))
		}
	}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		var extra []labels.Label
		if err := json.Unmarshal(data, &extra); err != nil {
			return fmt.Errorf("parsing %s: %w", *file, err)
		}
		all = append(all, extra...)
	}
	if len(all) == 0 {
		return errors.New("one of -ids or -file is required")
	}

	var buf bytes.Buffer
	pages, err := labels.Render(&buf, all,
		labels.WithSymbology(sym), labels.WithSkip(*skip), labels.WithBorder(*border))
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Printf("%s: %d labels on %d pages\n", *out, len(all), pages)
	return nil
}

func runMerge(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	out := fs.String("o", "", "output file")
	stamp := fs.String("stamp", "", "text stamped diagonally on every page")
	numbers := fs.Bool("numbers", false, "number pages across the merged document")
	_ = fs.Parse(args)

	if *out == "" || fs.NArg() == 0 {
		return errors.New("usage: hospreport merge -o out.pdf a.pdf b.pdf ...")
	}
	if *stamp == "" && !*numbers {
		return pageops.MergeFiles(*out, fs.Args()...)
	}

	inputs := make([][]byte, fs.NArg())
	for i, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		inputs[i] = data
	}
	var opts pageops.Options
	if *stamp != "" {
		opts.Stamp = &pageops.Stamp{Text: *stamp}
	}
	if *numbers {
		opts.PageNumbers = &pageops.PageNumberStyle{}
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	err = pageops.MergeWith(f, opts, inputs...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
