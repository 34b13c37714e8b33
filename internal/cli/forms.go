package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/servio/internal/cli/formatter"
	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/reference"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// servioHuhTheme returns a huh theme matching the formatter palette.
func servioHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(servioHuhTheme())
}

// validateDate accepts blank input; ordering is checked on submit.
func validateDate(s string) error {
	_, err := domain.ParseDate(strings.TrimSpace(s))
	return err
}

func validateAmount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return errors.New("enter a number like 1500 or 1500.50")
	}
	return nil
}

func validateID(s string) error {
	if _, err := parseID(s); err != nil {
		return errors.New("enter a numeric id")
	}
	return nil
}

func parseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// gigFormValues is the flat, string-typed shape huh edits.
type gigFormValues struct {
	Title       string
	Description string
	Visibility  domain.Visibility
	StartDate   string
	EndDate     string
	Budget      string
	Negotiable  bool
}

func gigFormFrom(g *domain.GigDraft) *gigFormValues {
	return &gigFormValues{
		Title:       g.Title,
		Description: g.Description,
		Visibility:  g.Visibility,
		StartDate:   g.StartDate,
		EndDate:     g.EndDate,
		Budget:      string(g.ProjectBudget),
		Negotiable:  g.IsNegotiable,
	}
}

func (v *gigFormValues) apply(g *domain.GigDraft) {
	g.Title = strings.TrimSpace(v.Title)
	g.Description = v.Description
	g.Visibility = v.Visibility
	g.StartDate = strings.TrimSpace(v.StartDate)
	g.EndDate = strings.TrimSpace(v.EndDate)
	g.ProjectBudget = domain.Amount(strings.TrimSpace(v.Budget))
	g.IsNegotiable = v.Negotiable
}

func gigForm(v *gigFormValues, limit domain.TextLimit) *huh.Form {
	desc := huh.NewText().
		Title("Description").
		Description(fmt.Sprintf("Up to %d %s", limit.Max, limit.Unit)).
		Value(&v.Description)
	if limit.Unit == domain.LimitChars {
		desc = desc.CharLimit(limit.Max)
	}

	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title),
			desc,
			huh.NewSelect[domain.Visibility]().
				Title("Visibility").
				Options(
					huh.NewOption("Public", domain.VisibilityPublic),
					huh.NewOption("Private", domain.VisibilityPrivate),
				).
				Value(&v.Visibility),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder(domain.DateLayout).Value(&v.StartDate).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder(domain.DateLayout).Value(&v.EndDate).Validate(validateDate),
			huh.NewInput().Title("Project budget").Placeholder("1500").Value(&v.Budget).Validate(validateAmount),
			huh.NewConfirm().Title("Budget negotiable?").Value(&v.Negotiable),
		),
	)
}

type roleFormValues struct {
	NicheID        string
	ProfessionalID string
	Professional   string
	Budget         string
	Description    string
	Workload       domain.Workload
}

func (v *roleFormValues) role(cat *reference.Catalog) (domain.RoleEntry, error) {
	niche, err := parseID(v.NicheID)
	if err != nil {
		return domain.RoleEntry{}, fmt.Errorf("niche id: %w", err)
	}
	prof, err := parseID(v.ProfessionalID)
	if err != nil {
		return domain.RoleEntry{}, fmt.Errorf("professional id: %w", err)
	}
	r := domain.RoleEntry{
		NicheID:        niche,
		ProfessionalID: prof,
		Professional:   strings.TrimSpace(v.Professional),
		Budget:         domain.Amount(strings.TrimSpace(v.Budget)),
		Description:    v.Description,
		Workload:       v.Workload,
	}
	if cat != nil {
		if n, ok := cat.Niche(niche); ok {
			r.Niche = n.Name
		}
	}
	return r, nil
}

func roleForm(v *roleFormValues, cat *reference.Catalog) *huh.Form {
	var niche huh.Field = huh.NewInput().Title("Niche id").Value(&v.NicheID).Validate(validateID)
	if cat != nil {
		var opts []huh.Option[string]
		for _, ind := range cat.Industries() {
			for _, n := range ind.Subcategories {
				opts = append(opts, huh.NewOption(ind.Name+" / "+n.Name, strconv.FormatInt(n.ID, 10)))
			}
		}
		if len(opts) > 0 {
			niche = huh.NewSelect[string]().Title("Niche").Options(opts...).Value(&v.NicheID)
		}
	}

	workloads := make([]huh.Option[domain.Workload], 0, len(domain.WorkloadOptions))
	for _, w := range domain.WorkloadOptions {
		workloads = append(workloads, huh.NewOption(w.Label(), w))
	}

	return newForm(
		huh.NewGroup(
			niche,
			huh.NewInput().Title("Professional id").Value(&v.ProfessionalID).Validate(validateID),
			huh.NewInput().Title("Professional").Value(&v.Professional),
			huh.NewInput().Title("Role budget").Value(&v.Budget).Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewText().Title("Role description").CharLimit(domain.RoleDescriptionLimit.Max).Value(&v.Description),
			huh.NewSelect[domain.Workload]().Title("Workload").Options(workloads...).Value(&v.Workload),
		),
	)
}

type deliverableFormValues struct {
	Title string
	Unit  domain.DurationUnit
	Value int
	DueBy string
	More  bool
}

func deliverableForm(v *deliverableFormValues) *huh.Form {
	units := make([]huh.Option[domain.DurationUnit], 0, len(domain.DurationUnits))
	for _, u := range domain.DurationUnits {
		units = append(units, huh.NewOption(string(u), u))
	}

	return newForm(
		huh.NewGroup(
			huh.NewText().Title("Deliverable").Value(&v.Title),
			huh.NewSelect[domain.DurationUnit]().Title("Duration unit").Options(units...).Value(&v.Unit),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Duration").
				OptionsFunc(func() []huh.Option[int] {
					values := v.Unit.ValueOptions()
					opts := make([]huh.Option[int], 0, len(values))
					for _, n := range values {
						opts = append(opts, huh.NewOption(strconv.Itoa(n), n))
					}
					return opts
				}, &v.Unit).
				Value(&v.Value),
			huh.NewInput().Title("Due by").Placeholder(domain.DateLayout).Value(&v.DueBy).Validate(validateDate),
			huh.NewConfirm().Title("Add another deliverable?").Value(&v.More),
		),
	)
}

type applicationFormValues struct {
	Apply    bool
	Amount   string
	Plan     domain.PaymentPlan
	RoleName string
}

func paymentPlanOptions() []huh.Option[domain.PaymentPlan] {
	opts := make([]huh.Option[domain.PaymentPlan], 0, len(domain.PaymentPlans))
	for _, p := range domain.PaymentPlans {
		opts = append(opts, huh.NewOption(p.Label(), p))
	}
	return opts
}

func applicationForm(v *applicationFormValues, roleAmount domain.Amount) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Apply for "+v.RoleName+"?").
				Description("Role budget "+formatter.AmountText(roleAmount)).
				Value(&v.Apply),
		),
		huh.NewGroup(
			huh.NewInput().Title("Your price").Placeholder(string(roleAmount)).Value(&v.Amount).Validate(validateAmount),
			huh.NewSelect[domain.PaymentPlan]().Title("Payment plan").Options(paymentPlanOptions()...).Value(&v.Plan),
		).WithHideFunc(func() bool { return !v.Apply }),
	)
}
