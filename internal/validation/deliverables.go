package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/domain"
)

const (
	dueDateMargin          = 3 * 24 * time.Hour
	minDeliverableWords    = 10
	titleDeliverables      = "Deliverables Required"
	titleDeliverableFormat = "Invalid Deliverable"
)

// ValidateDeliverables checks the deliverables payload against the project
// end date (YYYY-MM-DD). It stops at the first failing deliverable.
func ValidateDeliverables(items []contract.Deliverable, projectEnd string) Result {
	if len(items) == 0 {
		return fail(Violation{
			Code:    CodeDeliverablesRequired,
			Field:   "deliverables",
			Title:   titleDeliverables,
			Message: "Please add at least one deliverable to your proposal.",
		})
	}

	end, endErr := domain.ParseDate(projectEnd)
	for i, d := range items {
		if v := checkDeliverable(i, d, end, endErr); v != nil {
			return fail(*v)
		}
	}
	return ok()
}

func checkDeliverable(i int, d contract.Deliverable, end *time.Time, endErr error) *Violation {
	field := fmt.Sprintf("deliverables[%d]", i)
	bad := func(code Code, name, msg string) *Violation {
		return &Violation{Code: code, Field: field + "." + name, Title: titleDeliverableFormat, Message: msg}
	}

	switch {
	case strings.TrimSpace(d.Description) == "":
		return bad(CodeFieldRequired, "description", fmt.Sprintf("Deliverable #%d needs a description.", i+1))
	case strings.TrimSpace(d.DurationUnit) == "":
		return bad(CodeFieldRequired, "duration_unit", fmt.Sprintf("Deliverable #%d needs a duration unit.", i+1))
	case d.DurationValue == 0:
		return bad(CodeFieldRequired, "duration_value", fmt.Sprintf("Deliverable #%d needs a duration.", i+1))
	case strings.TrimSpace(d.DueDate) == "":
		return bad(CodeFieldRequired, "due_date", fmt.Sprintf("Deliverable #%d needs a due date.", i+1))
	}

	unit := domain.DurationUnit(d.DurationUnit)
	if unit.MaxValue() == 0 {
		return bad(CodeDurationOutOfRange, "duration_unit",
			fmt.Sprintf("Duration unit %q is not one of days, weeks or months.", d.DurationUnit))
	}
	if !unit.Allows(d.DurationValue) {
		return bad(CodeDurationOutOfRange, "duration_value",
			fmt.Sprintf("Duration for %s must be between 1 and %d.", unit, unit.MaxValue()))
	}

	if domain.WordCount(d.Description) < minDeliverableWords {
		return bad(CodeDescriptionTooShort, "description",
			fmt.Sprintf("Please describe deliverable #%d in at least %d words.", i+1, minDeliverableWords))
	}

	due, err := domain.ParseDate(d.DueDate)
	if err != nil {
		return bad(CodeDateInvalid, "due_date", fmt.Sprintf("Deliverable #%d has an invalid due date.", i+1))
	}
	if endErr != nil || end == nil {
		return bad(CodeDateInvalid, "due_date", "The project end date is missing or invalid.")
	}
	if due.After(end.Add(-dueDateMargin)) {
		return bad(CodeDueDateTooLate, "due_date",
			"Deliverable due date must be at least 3 days before the project end date.")
	}
	return nil
}
