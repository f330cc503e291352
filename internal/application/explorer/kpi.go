package explorer

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// NAText is how an unavailable KPI is displayed.
const NAText = "NA"

// KPIValue is either a number rounded to one decimal place or the NA
// sentinel.  The zero value is NA.
type KPIValue struct {
	value     decimal.Decimal
	available bool
}

// NA returns the unavailable KPI value.
func NA() KPIValue { return KPIValue{} }

// NewKPIValue rounds d half away from zero to one decimal place.
func NewKPIValue(d decimal.Decimal) KPIValue {
	return KPIValue{value: d.Round(1), available: true}
}

// Available reports whether the value is a number.
func (k KPIValue) Available() bool { return k.available }

// Decimal returns the rounded value; ok is false for NA.
func (k KPIValue) Decimal() (d decimal.Decimal, ok bool) {
	return k.value, k.available
}

// Float64 returns the rounded value as a float64; ok is false for NA.
func (k KPIValue) Float64() (f float64, ok bool) {
	if !k.available {
		return 0, false
	}
	f, _ = k.value.Float64()
	return f, true
}

// String renders the value with exactly one decimal digit, or "NA".
func (k KPIValue) String() string {
	if !k.available {
		return NAText
	}
	return k.value.StringFixed(1)
}

// MarshalJSON encodes an available value as a JSON number with one decimal
// digit and NA as null.
func (k KPIValue) MarshalJSON() ([]byte, error) {
	if !k.available {
		return []byte("null"), nil
	}
	return []byte(k.value.StringFixed(1)), nil
}

// UnmarshalJSON accepts a JSON number, null, or the string "NA".
func (k *KPIValue) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `"`+NAText+`"` {
		*k = NA()
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return err
	}
	*k = NewKPIValue(d)
	return nil
}

//Personal.AI order the ending
