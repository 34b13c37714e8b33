package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_Decimal_CoercesNonNumericToZero(t *testing.T) {
	cases := map[Amount]string{
		"":       "0",
		"   ":    "0",
		"abc":    "0",
		"12x":    "0",
		"500":    "500",
		" 42.5 ": "42.5",
		"$1,200": "1200",
		"-10":    "-10",
	}
	for in, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(in.Decimal()), "input %q", in)
	}
}

func TestAmount_UnmarshalJSON_AcceptsNumberStringAndNull(t *testing.T) {
	var v struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 500, "b": "75.25", "c": null}`), &v))
	assert.Equal(t, Amount("500"), v.A)
	assert.Equal(t, Amount("75.25"), v.B)
	assert.Equal(t, Amount(""), v.C)
	assert.Equal(t, 500.0, v.A.Float64())
}

func TestAmount_UnmarshalJSON_RejectsObjects(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &a))
}

func TestSumAmounts_IgnoresGarbage(t *testing.T) {
	total := SumAmounts("100", "oops", "", "50.5")
	assert.True(t, decimal.RequireFromString("150.5").Equal(total))
}
