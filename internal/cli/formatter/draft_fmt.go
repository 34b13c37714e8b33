package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/validation"
	"github.com/shopspring/decimal"
)

// FormatDraftList renders stored drafts inside a bordered box.
func FormatDraftList(drafts []*domain.Draft, now time.Time) string {
	if len(drafts) == 0 {
		return RenderBox("Drafts", Dim("No drafts yet. Create one with `servio gig new`."))
	}
	headers := []string{"ID", "KIND", "TITLE", "STATUS", "UPDATED"}
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			TruncID(d.ID),
			KindBadge(d.Kind),
			Bold(d.Title),
			DraftStatusPill(d.Status),
			HumanTimestamp(d.UpdatedAt, now),
		})
	}
	return RenderBox("Drafts", RenderTable(headers, rows))
}

// GigView is what FormatGig needs beyond the draft itself.
type GigView struct {
	Draft      *domain.GigDraft
	RolesTotal decimal.Decimal
	Locked     bool
}

// FormatGig renders a gig draft with its roles.
func FormatGig(v GigView) string {
	g := v.Draft
	var b strings.Builder

	b.WriteString(StyleBold.Render(orDash(g.Title)) + "\n")
	b.WriteString(GigStatusPill(g.Status) + "\n\n")

	b.WriteString(Field("slug", orDash(g.Slug)))
	b.WriteString(Field("visibility", orDash(string(g.Visibility))))
	b.WriteString(Field("timeline", fmt.Sprintf("%s → %s", orDash(g.StartDate), orDash(g.EndDate))))
	budget := AmountText(g.ProjectBudget)
	if v.Locked {
		budget += " " + StyleYellow.Render("(locked to roles)")
	}
	b.WriteString(Field("budget", budget))
	b.WriteString(Field("roles total", Money(v.RolesTotal)))
	negotiable := "no"
	if g.IsNegotiable {
		negotiable = "yes"
	}
	b.WriteString(Field("negotiable", negotiable))

	if desc := strings.TrimSpace(g.Description); desc != "" {
		b.WriteString("\n" + StyleFg.Render(desc) + "\n")
	}

	if len(g.Roles) > 0 {
		b.WriteString("\n" + Header("Roles") + "\n")
		rows := make([][]string, 0, len(g.Roles))
		for i, r := range g.Roles {
			state := StyleGreen.Render("●")
			if !r.Active() {
				state = StyleDim.Render("○")
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				state,
				r.DisplayName(),
				orDash(r.Niche),
				AmountText(r.Budget),
				orDash(r.Workload.Label()),
			})
		}
		b.WriteString(RenderTable([]string{"#", "", "ROLE", "NICHE", "BUDGET", "WORKLOAD"}, rows))
	}
	return RenderBox("Gig", strings.TrimRight(b.String(), "\n"))
}

// FormatSummary renders the proposal totals.
func FormatSummary(s domain.ProposalSummary) string {
	var b strings.Builder
	b.WriteString(Field("roles", strconv.Itoa(s.Count)))
	b.WriteString(Field("subtotal", Money(s.Subtotal)))
	b.WriteString(Field("service fee", Money(s.ServiceFee)+" "+Dim("(5%)")))
	b.WriteString(Field("total", StyleBold.Render(Money(s.Total))))
	return strings.TrimRight(b.String(), "\n")
}

// FormatProposal renders a stored proposal.
func FormatProposal(p *domain.ProposalDraft, s domain.ProposalSummary) string {
	var b strings.Builder
	if p.Gig != nil {
		b.WriteString(StyleBold.Render(orDash(p.Gig.Title)) + "\n")
		b.WriteString(Dim("ends "+orDash(p.Gig.EndDate)) + "\n\n")
	}

	b.WriteString(Header("Deliverables") + "\n")
	rows := make([][]string, 0, len(p.Deliverables))
	for i, d := range p.Deliverables {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDash(d.Title),
			fmt.Sprintf("%d %s", d.Value, d.Unit),
			orDash(d.DueBy),
		})
	}
	b.WriteString(RenderTable([]string{"#", "DESCRIPTION", "DURATION", "DUE"}, rows))

	apps := p.Applications
	if p.ProjectRole != nil {
		apps = []domain.AppliedRoleEntry{*p.ProjectRole}
	}
	b.WriteString("\n" + Header("Roles") + "\n")
	rows = rows[:0]
	for _, a := range apps {
		state := StyleGreen.Render("●")
		if !a.Active {
			state = StyleDim.Render("○")
		}
		if !a.CanApply {
			state = StyleRed.Render("✖")
		}
		rows = append(rows, []string{
			state,
			orDash(a.RoleName),
			AmountText(a.RoleAmount),
			AmountText(a.ProposedAmount),
			a.PaymentPlan.Label(),
		})
	}
	b.WriteString(RenderTable([]string{"", "ROLE", "OFFERED", "PROPOSED", "PAYMENT"}, rows))

	b.WriteString("\n" + FormatSummary(s))
	return RenderBox("Proposal", b.String())
}

// FormatViolations lists validation failures, one per line.
func FormatViolations(vs []validation.Violation) string {
	var b strings.Builder
	for _, v := range vs {
		field := ""
		if v.Field != "" {
			field = Dim(" [" + v.Field + "]")
		}
		b.WriteString(StyleRed.Render("✖ ") + v.Message + field + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSubmissions renders the submit history of a draft.
func FormatSubmissions(subs []*domain.Submission, now time.Time) string {
	if len(subs) == 0 {
		return Dim("Never submitted.")
	}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		code := Dim("--")
		if s.StatusCode != 0 {
			code = strconv.Itoa(s.StatusCode)
		}
		rows = append(rows, []string{
			HumanTimestamp(s.CreatedAt, now),
			orDash(s.Action),
			outcomeText(s.Outcome),
			code,
			orDash(s.Message),
		})
	}
	return RenderTable([]string{"WHEN", "ACTION", "OUTCOME", "HTTP", "MESSAGE"}, rows)
}

func outcomeText(o string) string {
	switch o {
	case "succeeded":
		return StyleGreen.Render(o)
	case "rejected", "unreachable":
		return StyleRed.Render(o)
	case "invalid":
		return StyleYellow.Render(o)
	default:
		return orDash(o)
	}
}
