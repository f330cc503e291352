package survey

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// nullTokens are the cell texts read as missing values.  The set matches the
// defaults of common dataframe CSV readers.
var nullTokens = map[string]struct{}{
	"":         {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"NaN":      {},
	"nan":      {},
	"-NaN":     {},
	"-nan":     {},
	"null":     {},
	"NULL":     {},
	"None":     {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"<NA>":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
}

// Cell is the raw text of one dataset cell.
type Cell string

// IsNull reports whether the cell holds a missing-value token.  Surrounding
// whitespace is ignored.
func (c Cell) IsNull() bool {
	_, ok := nullTokens[strings.TrimSpace(string(c))]
	return ok
}

// Decimal parses the cell as a decimal number.  The second result is false
// for null cells, for text that is not a number, and for numbers outside the
// finite float64 range.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.IsNull() {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(c)))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// String returns the raw text.
func (c Cell) String() string { return string(c) }

//Personal.AI order the ending
