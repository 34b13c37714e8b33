package validation

import (
	"testing"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectEnd = "2026-04-10"

func validDeliverable() contract.Deliverable {
	return contract.Deliverable{
		Description:   tenWords,
		DurationUnit:  "days",
		DurationValue: 3,
		DueDate:       "2026-04-07",
	}
}

func TestValidateDeliverables_Empty(t *testing.T) {
	res := ValidateDeliverables(nil, projectEnd)

	require.False(t, res.Valid)
	v := res.First()
	require.NotNil(t, v)
	assert.Equal(t, CodeDeliverablesRequired, v.Code)
	assert.Equal(t, "Deliverables Required", v.Title)
}

func TestValidateDeliverables_Valid(t *testing.T) {
	res := ValidateDeliverables([]contract.Deliverable{validDeliverable()}, projectEnd)
	assert.True(t, res.Valid)
}

func TestValidateDeliverables_DueDateTooClose(t *testing.T) {
	d := validDeliverable()
	d.DueDate = "2026-04-09"

	res := ValidateDeliverables([]contract.Deliverable{d}, projectEnd)

	require.False(t, res.Valid)
	assert.Equal(t, CodeDueDateTooLate, res.First().Code)
}

func TestValidateDeliverables_RequiredFieldOrder(t *testing.T) {
	tests := []struct {
		name  string
		item  contract.Deliverable
		field string
	}{
		{"all empty", contract.Deliverable{}, "deliverables[0].description"},
		{"no unit", contract.Deliverable{Description: tenWords}, "deliverables[0].duration_unit"},
		{"no value", contract.Deliverable{Description: tenWords, DurationUnit: "weeks"}, "deliverables[0].duration_value"},
		{"no due date", contract.Deliverable{Description: tenWords, DurationUnit: "weeks", DurationValue: 2}, "deliverables[0].due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateDeliverables([]contract.Deliverable{tt.item}, projectEnd)
			require.False(t, res.Valid)
			assert.Equal(t, CodeFieldRequired, res.First().Code)
			assert.Equal(t, tt.field, res.First().Field)
		})
	}
}

func TestValidateDeliverables_DurationBounds(t *testing.T) {
	d := validDeliverable()
	d.DurationUnit = "weeks"
	d.DurationValue = 5
	res := ValidateDeliverables([]contract.Deliverable{d}, projectEnd)
	assert.Equal(t, CodeDurationOutOfRange, res.First().Code)

	d.DurationUnit = "years"
	d.DurationValue = 1
	res = ValidateDeliverables([]contract.Deliverable{d}, projectEnd)
	assert.Equal(t, CodeDurationOutOfRange, res.First().Code)

	d.DurationUnit = "months"
	d.DurationValue = 12
	assert.True(t, ValidateDeliverables([]contract.Deliverable{d}, projectEnd).Valid)
}

func TestValidateDeliverables_ShortDescription(t *testing.T) {
	d := validDeliverable()
	d.Description = "landing page"

	res := ValidateDeliverables([]contract.Deliverable{d}, projectEnd)
	assert.Equal(t, CodeDescriptionTooShort, res.First().Code)
}

func TestValidateDeliverables_InvalidDates(t *testing.T) {
	d := validDeliverable()
	d.DueDate = "07/04/2026"
	res := ValidateDeliverables([]contract.Deliverable{d}, projectEnd)
	assert.Equal(t, CodeDateInvalid, res.First().Code)

	res = ValidateDeliverables([]contract.Deliverable{validDeliverable()}, "")
	assert.Equal(t, CodeDateInvalid, res.First().Code)
}

func TestValidateDeliverables_StopsAtFirstFailure(t *testing.T) {
	a := validDeliverable()
	b := contract.Deliverable{}
	c := contract.Deliverable{Description: "short"}

	res := ValidateDeliverables([]contract.Deliverable{a, b, c}, projectEnd)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "deliverables[1].description", res.First().Field)
}
