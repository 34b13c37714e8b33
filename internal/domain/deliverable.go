package domain

import "github.com/google/uuid"

type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
)

// DurationUnits lists the units in display order.
var DurationUnits = []DurationUnit{UnitDays, UnitWeeks, UnitMonths}

var durationLimits = map[DurationUnit]int{
	UnitDays:   6,
	UnitWeeks:  4,
	UnitMonths: 12,
}

// MaxValue returns the largest duration value allowed for the unit, or 0 for
// an unknown unit.
func (u DurationUnit) MaxValue() int {
	return durationLimits[u]
}

// ValueOptions returns 1..MaxValue, the choices offered for the unit.
func (u DurationUnit) ValueOptions() []int {
	max := u.MaxValue()
	out := make([]int, max)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Allows reports whether value is within the unit's bound.
func (u DurationUnit) Allows(value int) bool {
	return value >= 1 && value <= u.MaxValue()
}

// DeliverableEntry is one deliverable line in a proposal, as edited.
type DeliverableEntry struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Unit  DurationUnit `json:"unit"`
	Value int          `json:"value"`
	DueBy string       `json:"due_by"`
}

// NewDeliverable returns a blank deliverable of one day.
func NewDeliverable() DeliverableEntry {
	return DeliverableEntry{
		ID:    uuid.New().String(),
		Unit:  UnitDays,
		Value: 1,
	}
}
