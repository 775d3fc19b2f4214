package hospreport

import (
	"time"

	"github.com/google/uuid"

	"github.com/lvillar/hospreport/format"
)

// Option is a functional option for Render and Generate.
type Option func(*config)

type config struct {
	geometry     Geometry
	formatter    *format.Formatter
	now          func() time.Time
	repeatHeader bool
	id           string
	author       string
	compress     bool
}

// WithGeometry replaces the A4 layout constants.
func WithGeometry(g Geometry) Option {
	return func(c *config) {
		c.geometry = g
	}
}

// WithFormatter sets the locale formatter used for totals and the footer
// timestamp. Its ZeroPolicy also drives the running totals.
func WithFormatter(f *format.Formatter) Option {
	return func(c *config) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithClock sets the time source for the footer timestamp and PDF metadata.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRepeatHeader redraws table headers at the top of continuation pages.
func WithRepeatHeader(repeat bool) Option {
	return func(c *config) {
		c.repeatHeader = repeat
	}
}

// WithDocumentID fixes the document identifier instead of a random UUID.
func WithDocumentID(id string) Option {
	return func(c *config) {
		c.id = id
	}
}

// WithAuthor sets the PDF author metadata.
func WithAuthor(author string) Option {
	return func(c *config) {
		c.author = author
	}
}

// WithCompression toggles stream compression in the generated PDF.
func WithCompression(compress bool) Option {
	return func(c *config) {
		c.compress = compress
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		geometry:  A4(),
		formatter: format.New(),
		now:       time.Now,
		compress:  true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	return cfg
}
