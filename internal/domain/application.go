package domain

import (
	"fmt"
	"strings"
)

// ApplicationField names an editable field of an AppliedRoleEntry.
type ApplicationField string

const (
	FieldProposedAmount ApplicationField = "proposed_amount"
	FieldPaymentPlan    ApplicationField = "payment_plan"
)

// AppliedRoleEntry is a gig role a professional is applying for.
//
// The entry is a two-state machine. Toggle flips between inactive and active.
// Touch writes a field and, when the new value is non-blank, moves the entry
// from inactive to active: typing into a role means applying for it.
type AppliedRoleEntry struct {
	IndustryID     int64       `json:"industry_id"`
	NicheID        int64       `json:"niche_id"`
	RoleName       string      `json:"role_name,omitempty"`
	RoleAmount     Amount      `json:"role_amount"`
	ProposedAmount Amount      `json:"proposed_amount"`
	PaymentPlan    PaymentPlan `json:"payment_plan"`
	CanApply       bool        `json:"can_apply"`
	Active         bool        `json:"is_active"`
}

// NewAppliedRole decorates a gig role for application. The proposed amount
// starts at the role amount.
func NewAppliedRole(industryID, nicheID int64, name string, roleAmount Amount, plan PaymentPlan, canApply bool) AppliedRoleEntry {
	if plan == "" {
		plan = DefaultPaymentPlan
	}
	return AppliedRoleEntry{
		IndustryID:     industryID,
		NicheID:        nicheID,
		RoleName:       name,
		RoleAmount:     roleAmount,
		ProposedAmount: roleAmount,
		PaymentPlan:    plan,
		CanApply:       canApply,
	}
}

// Toggle flips the active flag.
func (a *AppliedRoleEntry) Toggle() {
	a.Active = !a.Active
}

// Touch sets field to value and activates the entry when value is non-blank.
func (a *AppliedRoleEntry) Touch(field ApplicationField, value string) error {
	switch field {
	case FieldProposedAmount:
		a.ProposedAmount = Amount(value)
	case FieldPaymentPlan:
		a.PaymentPlan = PaymentPlan(value)
	default:
		return fmt.Errorf("unknown application field %q", field)
	}
	if strings.TrimSpace(value) != "" {
		a.Active = true
	}
	return nil
}

// Price is what the professional is asking for the role: the proposed amount,
// else the role amount, else zero.
func (a AppliedRoleEntry) Price() Amount {
	if a.ProposedAmount.Decimal().IsPositive() {
		return a.ProposedAmount
	}
	if a.RoleAmount.Decimal().IsPositive() {
		return a.RoleAmount
	}
	return "0"
}
