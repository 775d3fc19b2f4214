// Package format turns nullable backend values into display strings.
//
// Every function here is total: missing, malformed or out-of-range input
// degrades to Placeholder instead of returning an error, because report
// builders draw straight from backend JSON that routinely carries nulls.
package format

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is rendered for absent or unusable values.
const Placeholder = "-"

// ZeroPolicy decides whether a numeric zero is a value or an absence.
type ZeroPolicy int

const (
	// ZeroAsMissing treats 0 like null: displayed as Placeholder and left
	// out of running totals.
	ZeroAsMissing ZeroPolicy = iota
	// ZeroAsValue displays 0 as a currency amount and counts it in totals.
	ZeroAsValue
)

// ParseZeroPolicy maps the configuration strings "missing" and "value".
// Anything else yields ZeroAsMissing.
func ParseZeroPolicy(s string) ZeroPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "value") {
		return ZeroAsValue
	}
	return ZeroAsMissing
}

func (p ZeroPolicy) String() string {
	if p == ZeroAsValue {
		return "value"
	}
	return "missing"
}

// Formatter holds the locale settings shared by a report.
type Formatter struct {
	Tag        language.Tag
	Symbol     string
	Location   *time.Location
	ZeroPolicy ZeroPolicy

	printer *message.Printer
}

// New returns a pt-BR formatter using UTC and ZeroAsMissing.
func New() *Formatter {
	return NewWith(language.BrazilianPortuguese, "", time.UTC, ZeroAsMissing)
}

// NewWith returns a formatter for an explicit locale. An empty symbol is
// replaced by the symbol of the tag's regional currency.
func NewWith(tag language.Tag, symbol string, loc *time.Location, policy ZeroPolicy) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	printer := message.NewPrinter(tag)
	if symbol == "" {
		symbol = currencySymbol(tag, printer)
	}
	return &Formatter{
		Tag:        tag,
		Symbol:     symbol,
		Location:   loc,
		ZeroPolicy: policy,
		printer:    printer,
	}
}

// CurrencySymbol returns the local symbol of tag's currency: "R$" for pt-BR.
func CurrencySymbol(tag language.Tag) string {
	return currencySymbol(tag, message.NewPrinter(tag))
}

func currencySymbol(tag language.Tag, p *message.Printer) string {
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return ""
	}
	return p.Sprint(currency.Symbol(unit))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Date formats a nullable backend date as dd/MM/yyyy.
func (f *Formatter) Date(s *string) string {
	if s == nil {
		return Placeholder
	}
	return f.DateString(*s)
}

// DateString formats a backend date string as dd/MM/yyyy.
func (f *Formatter) DateString(s string) string {
	t, ok := f.parseDate(s)
	if !ok {
		return Placeholder
	}
	return t.Format("02/01/2006")
}

// ParseDate exposes the lenient parser used by Date.
func (f *Formatter) ParseDate(s string) (time.Time, bool) {
	return f.parseDate(s)
}

func (f *Formatter) parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// Date-only values are civil dates and must not move across zones.
	if len(s) == len("2006-01-02") {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339Nano {
			t = t.In(f.Location)
		}
		return t, true
	}
	return time.Time{}, false
}

// DateTime formats a timestamp as dd/MM/yyyy HH:mm in the formatter's zone.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.In(f.Location).Format("02/01/2006 15:04")
}

// Counts reports whether v should be displayed and summed under the policy.
func (f *Formatter) Counts(v *float64) bool {
	return counts(v, f.ZeroPolicy)
}

func counts(v *float64, policy ZeroPolicy) bool {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return false
	}
	if *v == 0 && policy == ZeroAsMissing {
		return false
	}
	return true
}

// Currency formats a nullable amount, e.g. "R$ 1.234,56".
func (f *Formatter) Currency(v *float64) string {
	if !f.Counts(v) {
		return Placeholder
	}
	return f.Amount(*v)
}

// Amount formats v unconditionally. NaN and infinities still yield
// Placeholder.
func (f *Formatter) Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	p := f.printer
	if p == nil {
		p = message.NewPrinter(f.Tag)
	}
	num := p.Sprintf("%.2f", v)
	if f.Symbol == "" {
		return num
	}
	return f.Symbol + " " + num
}

// Hours formats a workload such as "8 h" or "1,5 h".
func (f *Formatter) Hours(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return Placeholder
	}
	p := f.printer
	if p == nil {
		p = message.NewPrinter(f.Tag)
	}
	if *v == math.Trunc(*v) {
		return p.Sprintf("%d h", int64(*v))
	}
	return p.Sprintf("%.1f h", *v)
}

// Text returns the trimmed value or Placeholder.
func Text(s *string) string {
	if s == nil {
		return Placeholder
	}
	return TextString(*s)
}

// TextString returns the trimmed value or Placeholder.
func TextString(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return Placeholder
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug folds accents, lower-cases and joins words with underscores:
// "Capacitação NR-32" becomes "capacitacao_nr_32".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	slug := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(folded), "_"), "_")
	if slug == "" {
		return "sem_titulo"
	}
	return slug
}
