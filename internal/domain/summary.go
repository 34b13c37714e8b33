package domain

import "github.com/shopspring/decimal"

// ServiceFeeRate is the marketplace fee charged on a proposal subtotal.
var ServiceFeeRate = decimal.NewFromFloat(0.05)

// ProposalSummary is derived from the active applied roles and never stored.
type ProposalSummary struct {
	Count      int
	Subtotal   decimal.Decimal
	ServiceFee decimal.Decimal
	Total      decimal.Decimal
}

// Summarize computes the summary over active entries.
func Summarize(apps []AppliedRoleEntry) ProposalSummary {
	s := ProposalSummary{Subtotal: decimal.Zero}
	for _, a := range apps {
		if !a.Active {
			continue
		}
		s.Count++
		s.Subtotal = s.Subtotal.Add(a.Price().Decimal())
	}
	s.ServiceFee = s.Subtotal.Mul(ServiceFeeRate)
	s.Total = s.Subtotal.Add(s.ServiceFee)
	return s
}
