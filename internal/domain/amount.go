package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as the user typed it. The raw text is kept so a
// half-typed value survives a round trip through the draft store; arithmetic
// goes through Decimal, which coerces blank or non-numeric text to zero.
type Amount string

// AmountOf formats d as an Amount.
func AmountOf(d decimal.Decimal) Amount {
	return Amount(d.String())
}

// Decimal returns the parsed value, or zero when the text is not a number.
func (a Amount) Decimal() decimal.Decimal {
	s := strings.TrimSpace(string(a))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float64 returns the value as a JSON-friendly number.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

// IsBlank reports whether no text was entered.
func (a Amount) IsBlank() bool {
	return strings.TrimSpace(string(a)) == ""
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// SumAmounts adds every amount, counting unparseable ones as zero.
func SumAmounts(amounts ...Amount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal())
	}
	return total
}
