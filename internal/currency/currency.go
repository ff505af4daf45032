// Package currency formats and parses Indonesian Rupiah amounts.
//
// Amounts use Indonesian grouping: "." between thousands and "," before the
// fraction, e.g. "Rp 1.234.567,5".
package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Symbol = "Rp"
	Code   = "IDR"
)

type options struct {
	showSymbol     bool
	fractionDigits int
}

type Option func(*options)

// WithoutSymbol prefixes the amount with the currency code instead of "Rp".
func WithoutSymbol() Option {
	return func(o *options) { o.showSymbol = false }
}

// FractionDigits sets the maximum number of fraction digits kept (default 0).
func FractionDigits(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.fractionDigits = n
	}
}

// Formatter renders amounts. The zero value groups digits by hand; a
// Formatter from NewFormatter uses locale data and falls back to manual
// grouping whenever the locale output is not plain digits and separators.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

var std = NewFormatter(language.Indonesian)

// Format renders amount with the package's Indonesian formatter.
func Format(amount float64, opts ...Option) string {
	return std.Format(amount, opts...)
}

func (f *Formatter) Format(amount float64, opts ...Option) string {
	o := options{showSymbol: true}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	// Round once so both rendering paths agree on half-way values.
	rounded := decimal.NewFromFloat(math.Abs(amount)).Round(int32(o.fractionDigits))

	body := ""
	if f != nil && f.printer != nil {
		body = f.localized(rounded, o.fractionDigits)
	}
	if body == "" {
		body = group(rounded, o.fractionDigits)
	}

	prefix := Symbol
	if !o.showSymbol {
		prefix = Code
	}
	if amount < 0 && !rounded.IsZero() {
		return "-" + prefix + " " + body
	}
	return prefix + " " + body
}

func (f *Formatter) localized(d decimal.Decimal, digits int) string {
	v := d.InexactFloat64()
	s := f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(digits)))
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return ""
		}
	}
	return s
}

// group inserts "." every three digits of the integer part and uses "," as
// the decimal separator. Trailing fraction zeros are dropped.
func group(d decimal.Decimal, digits int) string {
	s := d.StringFixed(int32(digits))
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// Parse reads a formatted Rupiah string back into a number. A "-" anywhere
// makes the result negative; "." is treated as a thousands separator and the
// first "," as the decimal point. Input without digits parses to 0.
func Parse(s string) float64 {
	negative := strings.Contains(s, "-")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	v, err := strconv.ParseFloat(leadingNumber(cleaned), 64)
	if err != nil || v == 0 {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

// leadingNumber returns the longest prefix of s made of digits and at most
// one decimal point.
func leadingNumber(s string) string {
	seenPoint := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !seenPoint:
			seenPoint = true
		default:
			return s[:i]
		}
	}
	return s
}
