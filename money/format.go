package money

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders the amount as a locale-aware currency string for the
// given BCP 47 tag. An unrecognised or missing currency code falls back
// to "<code> <amount>" rather than failing.
func Format(m Money, tag language.Tag) string {
	unit, err := currency.ParseISO(m.CurrencyCode)
	if err != nil {
		return strings.TrimSpace(m.CurrencyCode + " " + m.Decimal())
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(m.Float64())))
}

// FormatDefault is Format in English, the widget's default display
// locale when the embedding page states no preference.
func FormatDefault(m Money) string {
	return Format(m, language.English)
}
