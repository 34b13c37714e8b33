package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	minTitleChars = 10
	maxSpan       = 365 * 24 * time.Hour
	titleGig      = "Validation Error"
)

// NicheCatalog answers whether a niche id is still offered. It replaces any
// process-wide lookup table: callers inject the reference data they loaded.
type NicheCatalog interface {
	HasNiche(id int64) bool
}

// Options tunes ValidateGigDraft. Zero fields fall back to DefaultOptions.
type Options struct {
	Now                 time.Time
	MinRoleBudget       decimal.Decimal
	MinDescriptionWords int
	DescriptionLimit    domain.TextLimit
	MinRoleWords        int
	Catalog             NicheCatalog
}

// DefaultOptions returns the marketplace rules: $30 minimum role budget, ten
// word descriptions, 2000 character gig descriptions.
func DefaultOptions() Options {
	return Options{
		Now:                 time.Now(),
		MinRoleBudget:       decimal.NewFromInt(30),
		MinDescriptionWords: 10,
		DescriptionLimit:    domain.GigDescriptionLimit,
		MinRoleWords:        10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Now.IsZero() {
		o.Now = d.Now
	}
	if o.MinRoleBudget.IsZero() {
		o.MinRoleBudget = d.MinRoleBudget
	}
	if o.MinDescriptionWords <= 0 {
		o.MinDescriptionWords = d.MinDescriptionWords
	}
	if o.DescriptionLimit.Max <= 0 {
		o.DescriptionLimit = d.DescriptionLimit
	}
	if o.MinRoleWords <= 0 {
		o.MinRoleWords = d.MinRoleWords
	}
	return o
}

// ValidateGigDraft returns every rule the draft breaks. Roles are checked
// independently of each other, so one bad role does not hide another.
func ValidateGigDraft(draft *domain.GigDraft, opts Options) Result {
	if draft == nil {
		return fail(violation(CodeFieldRequired, "", "Gig data is missing."))
	}
	opts = opts.withDefaults()

	var vs []Violation
	vs = append(vs, checkTitle(draft.Title)...)
	vs = append(vs, checkDescription(draft.Description, opts)...)
	if !draft.Visibility.Valid() {
		vs = append(vs, violation(CodeVisibilityInvalid, "visibility",
			fmt.Sprintf("Visibility must be public or private, got %q.", draft.Visibility)))
	}
	vs = append(vs, checkTimeline(draft, opts.Now)...)

	budget := draft.ProjectBudget.Decimal()
	if !budget.IsPositive() {
		vs = append(vs, violation(CodeBudgetNotPositive, "projectBudget", "Project budget must be greater than 0."))
	}

	for i, role := range draft.Roles {
		vs = append(vs, checkRole(i, role, opts)...)
	}

	if budget.LessThan(draft.ActiveRolesTotal()) {
		vs = append(vs, violation(CodeUnbalancedBudget, "projectBudget",
			"Project budget cannot be lower than the total cost of all roles."))
	}

	return collect(vs)
}

func checkTitle(title string) []Violation {
	if domain.CharCount(strings.TrimSpace(title)) < minTitleChars {
		return []Violation{violation(CodeTitleTooShort, "title", "Project title must be meaningful")}
	}
	return nil
}

func checkDescription(desc string, opts Options) []Violation {
	var vs []Violation
	if domain.WordCount(desc) < opts.MinDescriptionWords {
		vs = append(vs, violation(CodeDescriptionTooShort, "description",
			"Project description must be descriptive enough for professionals to understand"))
	}
	if opts.DescriptionLimit.Exceeded(desc) {
		vs = append(vs, violation(CodeDescriptionTooLong, "description",
			fmt.Sprintf("Project description cannot exceed %d %s.", opts.DescriptionLimit.Max, unitWord(opts.DescriptionLimit.Unit))))
	}
	return vs
}

func unitWord(u domain.LimitUnit) string {
	if u == domain.LimitWords {
		return "words"
	}
	return "characters"
}

func checkTimeline(draft *domain.GigDraft, now time.Time) []Violation {
	if draft.StartDate == "" || draft.EndDate == "" {
		return []Violation{violation(CodeTimelineRequired, "timeline", "Project timeline(start/end dates) is required.")}
	}

	var vs []Violation
	start, err := domain.ParseDate(draft.StartDate)
	if err != nil {
		vs = append(vs, violation(CodeDateInvalid, "startDate", "Start date must be a valid date (YYYY-MM-DD)."))
	}
	end, err := domain.ParseDate(draft.EndDate)
	if err != nil {
		vs = append(vs, violation(CodeDateInvalid, "endDate", "End date must be a valid date (YYYY-MM-DD)."))
	}
	if start == nil || end == nil {
		return vs
	}

	if draft.Status.Unpublished() && !start.After(domain.StartOfDay(now)) {
		vs = append(vs, violation(CodeStartNotFuture, "startDate", "Start date must be greater than the current day."))
	}
	if !end.After(*start) {
		vs = append(vs, violation(CodeEndBeforeStart, "endDate", "End date must be greater than start date."))
	}
	if end.Sub(*start) > maxSpan {
		vs = append(vs, violation(CodeDurationTooLong, "endDate", "Project duration cannot exceed 1 year."))
	}
	return vs
}

func checkRole(i int, role domain.RoleEntry, opts Options) []Violation {
	field := fmt.Sprintf("roles[%d]", i)
	var vs []Violation

	if role.NicheID == 0 {
		vs = append(vs, violation(CodeRoleNicheRequired, field+".nicheId",
			fmt.Sprintf("Please select a niche for role #%d", i+1)))
	} else if opts.Catalog != nil && !opts.Catalog.HasNiche(role.NicheID) {
		vs = append(vs, violation(CodeRoleNicheUnknown, field+".nicheId",
			fmt.Sprintf("The niche selected for %q is no longer available.", role.DisplayName())))
	}
	if role.ProfessionalID == 0 {
		vs = append(vs, violation(CodeRoleProfessional, field+".professionalId",
			fmt.Sprintf("Please select a professional for the role %q", role.Niche)))
	}
	if role.Budget.Decimal().LessThan(opts.MinRoleBudget) {
		vs = append(vs, violation(CodeRoleBudgetTooLow, field+".budget",
			fmt.Sprintf("Minimum budget is $%s", opts.MinRoleBudget.String())))
	}

	if !role.Active() {
		return vs
	}
	if domain.WordCount(role.Description) < opts.MinRoleWords {
		vs = append(vs, violation(CodeRoleDescription, field+".description",
			fmt.Sprintf("Please provide a meaningful description for %q to understand.", role.DisplayName())))
	}
	if strings.TrimSpace(string(role.Workload)) == "" {
		vs = append(vs, violation(CodeRoleWorkload, field+".workload", "Please select the workload"))
	}
	return vs
}

func violation(code Code, field, msg string) Violation {
	return Violation{Code: code, Field: field, Title: titleGig, Message: msg}
}
