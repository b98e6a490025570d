package money

// Package money normalizes the display of USD-denominated amounts. All
// stored amounts are USD; conversion happens only at render time so a
// currency change mid-session never causes drift.

import (
	"math"
	"strconv"
	"strings"
)

// Currency is a display currency context. Rate is expressed as local units
// per 1 USD. ZeroDecimal currencies (JPY, KRW, ...) render without a
// fractional part.
type Currency struct {
	Code        string  `json:"code"`
	Symbol      string  `json:"symbol"`
	Rate        float64 `json:"rate"`
	ZeroDecimal bool    `json:"zero_decimal"`
}

// USD is the default currency context used until resolution completes and
// whenever resolution fails.
var USD = Currency{Code: "USD", Symbol: "$", Rate: 1}

// byCountry maps two-letter ISO country codes to a fixed display currency.
// Rates are a mock snapshot, not a live feed.
var byCountry = map[string]Currency{
	"US": USD,
	"GB": {Code: "GBP", Symbol: "£", Rate: 0.79},
	"JP": {Code: "JPY", Symbol: "¥", Rate: 157, ZeroDecimal: true},
	"KR": {Code: "KRW", Symbol: "₩", Rate: 1378, ZeroDecimal: true},
	"IN": {Code: "INR", Symbol: "₹", Rate: 83.4},
	"CA": {Code: "CAD", Symbol: "CA$", Rate: 1.37},
	"AU": {Code: "AUD", Symbol: "A$", Rate: 1.51},
	"CH": {Code: "CHF", Symbol: "CHF ", Rate: 0.89},
	"SE": {Code: "SEK", Symbol: "kr ", Rate: 10.6},
	"BR": {Code: "BRL", Symbol: "R$", Rate: 5.6},
	"MX": {Code: "MXN", Symbol: "MX$", Rate: 18.4},
	"SG": {Code: "SGD", Symbol: "S$", Rate: 1.34},
	// Eurozone members share EUR.
	"DE": eur, "FR": eur, "ES": eur, "IT": eur, "NL": eur,
	"BE": eur, "AT": eur, "PT": eur, "IE": eur, "FI": eur,
}

var eur = Currency{Code: "EUR", Symbol: "€", Rate: 0.92}

// ByCountry resolves a two-letter country code to its display currency.
// Unknown, missing, or malformed codes resolve to USD.
func ByCountry(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return USD
	}
	if c, ok := byCountry[code]; ok {
		return c
	}
	return USD
}

// Format renders a USD amount in the given currency: converted by Rate,
// rounded to zero decimals for zero-decimal currencies and two otherwise,
// and prefixed with the symbol. It is a pure function of its arguments.
func Format(c Currency, usd float64) string {
	local := usd * c.Rate
	if c.ZeroDecimal {
		return c.Symbol + strconv.FormatFloat(math.Round(local), 'f', 0, 64)
	}
	return c.Symbol + strconv.FormatFloat(local, 'f', 2, 64)
}
