package economy

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type numberSymbols struct {
	decimal string
	group   string
}

var defaultSymbols = numberSymbols{decimal: ".", group: ","}

// Separators keyed by base language. Unlisted languages use defaultSymbols.
var localeSymbols = map[string]numberSymbols{
	"en": defaultSymbols,
	"ja": defaultSymbols,
	"zh": defaultSymbols,
	"ko": defaultSymbols,
	"de": {decimal: ",", group: "."},
	"es": {decimal: ",", group: "."},
	"it": {decimal: ",", group: "."},
	"nl": {decimal: ",", group: "."},
	"pt": {decimal: ",", group: "."},
	"tr": {decimal: ",", group: "."},
	"fr": {decimal: ",", group: "\u202f"},
	"pl": {decimal: ",", group: "\u00a0"},
	"ru": {decimal: ",", group: "\u00a0"},
	"uk": {decimal: ",", group: "\u00a0"},
	"sv": {decimal: ",", group: "\u00a0"},
}

func symbolsFor(locale language.Tag) numberSymbols {
	if locale == language.Und {
		return defaultSymbols
	}
	base, _ := locale.Base()
	if s, ok := localeSymbols[base.String()]; ok {
		return s
	}
	return defaultSymbols
}

// FormatAmount renders amount with exactly precision fractional digits,
// rounding half-up, using the separators of locale.
func FormatAmount(amount decimal.Decimal, locale language.Tag, precision int32) string {
	if precision < 0 {
		precision = 0
	}
	syms := symbolsFor(locale)
	fixed := amount.StringFixed(precision)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	sb.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteString(syms.group)
		}
		sb.WriteRune(r)
	}
	if fracPart != "" {
		sb.WriteString(syms.decimal)
		sb.WriteString(fracPart)
	}
	return sb.String()
}

// ParseAmount reads an amount rendered by FormatAmount, optionally carrying
// symbol anywhere in the text.
func ParseAmount(formatted string, locale language.Tag, symbol string) (decimal.Decimal, error) {
	syms := symbolsFor(locale)
	s := strings.TrimSpace(formatted)
	if symbol != "" {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		}
		return r
	}, s)
	if syms.group != "" {
		s = strings.ReplaceAll(s, syms.group, "")
	}
	if syms.decimal != "." {
		if strings.Contains(s, ".") {
			return decimal.Zero, ParseError(formatted)
		}
		s = strings.ReplaceAll(s, syms.decimal, ".")
	}
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, ParseError(formatted)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ParseError(formatted).WithCause(err)
	}
	return d, nil
}
