package proposal

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/payload"
)

var (
	ErrLastDeliverable    = errors.New("a proposal needs at least one deliverable")
	ErrDeliverableMissing = errors.New("deliverable not found")
	ErrUnknownUnit        = errors.New("duration unit must be days, weeks or months")
)

// DeliverablesEditor holds the deliverable lines of a proposal. It always
// holds at least one item.
type DeliverablesEditor struct {
	items []domain.DeliverableEntry
}

// NewDeliverablesEditor starts with one blank deliverable, or with items
// when resuming a saved proposal.
func NewDeliverablesEditor(items ...domain.DeliverableEntry) *DeliverablesEditor {
	e := &DeliverablesEditor{items: append([]domain.DeliverableEntry(nil), items...)}
	if len(e.items) == 0 {
		e.Add()
	}
	return e
}

// Items returns a copy of the current lines.
func (e *DeliverablesEditor) Items() []domain.DeliverableEntry {
	return append([]domain.DeliverableEntry(nil), e.items...)
}

func (e *DeliverablesEditor) Len() int { return len(e.items) }

// Add appends a blank deliverable and returns it.
func (e *DeliverablesEditor) Add() domain.DeliverableEntry {
	d := domain.NewDeliverable()
	e.items = append(e.items, d)
	return d
}

// Remove deletes a deliverable unless it is the last one.
func (e *DeliverablesEditor) Remove(id string) error {
	i, err := e.index(id)
	if err != nil {
		return err
	}
	if len(e.items) == 1 {
		return ErrLastDeliverable
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	return nil
}

// SetTitle stores the description, cut to the deliverable limit.
func (e *DeliverablesEditor) SetTitle(id, title string) error {
	i, err := e.index(id)
	if err != nil {
		return err
	}
	e.items[i].Title = domain.DeliverableDescriptionLimit.Truncate(title)
	return nil
}

// SetDuration sets unit and value. A value past the unit's bound is clamped
// to it, as the choice list for the new unit would be.
func (e *DeliverablesEditor) SetDuration(id string, unit domain.DurationUnit, value int) error {
	i, err := e.index(id)
	if err != nil {
		return err
	}
	max := unit.MaxValue()
	if max == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if value > max {
		value = max
	}
	if value < 1 {
		value = 1
	}
	e.items[i].Unit = unit
	e.items[i].Value = value
	return nil
}

func (e *DeliverablesEditor) SetDueBy(id, date string) error {
	i, err := e.index(id)
	if err != nil {
		return err
	}
	e.items[i].DueBy = date
	return nil
}

// ToPayload returns the wire form of every line.
func (e *DeliverablesEditor) ToPayload() []contract.Deliverable {
	return payload.BuildDeliverablesPayload(e.items)
}

func (e *DeliverablesEditor) index(id string) (int, error) {
	for i, it := range e.items {
		if it.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrDeliverableMissing, id)
}
