package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentPlan_Percentages(t *testing.T) {
	pcts, err := PaymentSplit503020.Percentages()
	require.NoError(t, err)
	assert.Equal(t, []int{50, 30, 20}, pcts)

	pcts, err = PaymentFullUpfront.Percentages()
	require.NoError(t, err)
	assert.Equal(t, []int{100}, pcts)

	_, err = PaymentPlan("weekly").Percentages()
	assert.Error(t, err)
}

func TestPaymentPlan_LabelsAndInstallments(t *testing.T) {
	assert.Equal(t, "Split 60% / 40%", PaymentSplit6040.Label())
	assert.Equal(t, "Full Upfront", PaymentFullUpfront.Label())
	assert.Equal(t, 3, PaymentSplit304030.Installments())
	assert.Equal(t, 1, PaymentFullUpfront.Installments())
	assert.True(t, PaymentSplit7030.IsSplit())
	assert.False(t, PaymentPlan("nope").Valid())
}

func TestDurationUnit_ValueOptions(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, UnitDays.ValueOptions())
	assert.Len(t, UnitWeeks.ValueOptions(), 4)
	assert.Len(t, UnitMonths.ValueOptions(), 12)
	assert.Empty(t, DurationUnit("years").ValueOptions())
	assert.True(t, UnitWeeks.Allows(4))
	assert.False(t, UnitWeeks.Allows(5))
	assert.False(t, UnitDays.Allows(0))
}

func TestRoleEntry_Active(t *testing.T) {
	assert.True(t, RoleEntry{NicheID: 1, ProfessionalID: 2, Budget: "40"}.Active())
	assert.False(t, RoleEntry{NicheID: 1, ProfessionalID: 2, Budget: "0"}.Active())
	assert.False(t, RoleEntry{NicheID: 1, Budget: "40"}.Active())
	assert.False(t, RoleEntry{ProfessionalID: 2, Budget: "40"}.Active())
	assert.False(t, RoleEntry{NicheID: 1, ProfessionalID: 2, Budget: "n/a"}.Active())
}

func TestGigStatus_Unpublished(t *testing.T) {
	assert.True(t, GigStatusNew.Unpublished())
	assert.True(t, GigStatusDraft.Unpublished())
	assert.False(t, GigStatusPublished.Unpublished())
	assert.True(t, (&GigDraft{Status: GigStatusInProgress}).Locked())
}
