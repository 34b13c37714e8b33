package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/servio/internal/domain"
	"github.com/alexanderramin/servio/internal/notify"
	"github.com/alexanderramin/servio/internal/validation"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestFormatDraftList(t *testing.T) {
	drafts := []*domain.Draft{
		{ID: "abcdef12-3456-7890-abcd-ef1234567890", Kind: domain.DraftGig, Title: "Landing page", Status: domain.DraftSubmitted, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "12345678-aaaa-bbbb-cccc-1234567890ab", Kind: domain.DraftProposal, Title: "Proposal: Landing page", Status: domain.DraftEditing, UpdatedAt: now.Add(-30 * time.Second)},
	}

	out := FormatDraftList(drafts, now)

	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
	assert.Contains(t, out, "Landing page")
	assert.Contains(t, out, "Submitted")
	assert.Contains(t, out, "Proposal")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "Just now")
}

func TestFormatDraftList_Empty(t *testing.T) {
	assert.Contains(t, FormatDraftList(nil, now), "No drafts yet")
}

func TestFormatGig(t *testing.T) {
	g := &domain.GigDraft{
		Title:         "Marketplace MVP",
		Visibility:    domain.VisibilityPublic,
		StartDate:     "2026-03-11",
		EndDate:       "2026-04-10",
		ProjectBudget: "500",
		Roles: []domain.RoleEntry{
			{NicheID: 10, ProfessionalID: 2, Professional: "Go developer", Budget: "500", Workload: domain.WorkloadFlexible},
			{Niche: "Design"},
		},
	}

	out := FormatGig(GigView{Draft: g, RolesTotal: decimal.NewFromInt(500), Locked: true})

	assert.Contains(t, out, "Marketplace MVP")
	assert.Contains(t, out, "2026-03-11 → 2026-04-10")
	assert.Contains(t, out, "$500.00")
	assert.Contains(t, out, "locked to roles")
	assert.Contains(t, out, "Go developer")
	assert.Contains(t, out, "Flexible")
	assert.Contains(t, out, "Design")
}

func TestFormatProposal(t *testing.T) {
	p := &domain.ProposalDraft{
		Gig: &domain.GigDraft{Title: "Marketplace MVP", EndDate: "2026-04-10"},
		Deliverables: []domain.DeliverableEntry{
			{ID: "d1", Title: "API and admin", Unit: domain.UnitWeeks, Value: 2, DueBy: "2026-04-01"},
		},
		Applications: []domain.AppliedRoleEntry{
			{RoleName: "Go developer", RoleAmount: "500", ProposedAmount: "450", PaymentPlan: domain.PaymentSplit6040, CanApply: true, Active: true},
		},
	}

	out := FormatProposal(p, domain.Summarize(p.Applications))

	assert.Contains(t, out, "2 weeks")
	assert.Contains(t, out, "Split 60% / 40%")
	assert.Contains(t, out, "$450.00")
	assert.Contains(t, out, "$22.50")
	assert.Contains(t, out, "$472.50")
}

func TestFormatViolations(t *testing.T) {
	out := FormatViolations([]validation.Violation{
		{Field: "title", Message: "Title must be at least 10 characters."},
		{Message: "Gig data is missing."},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[title]")
	assert.NotContains(t, lines[1], "[")
}

func TestFormatSubmissions(t *testing.T) {
	assert.Contains(t, FormatSubmissions(nil, now), "Never submitted")

	out := FormatSubmissions([]*domain.Submission{
		{Action: "publish", Outcome: "rejected", StatusCode: 400, Message: "Validation error", CreatedAt: now.Add(-5 * time.Minute)},
		{Action: "publish", Outcome: "unreachable", CreatedAt: now},
	}, now)
	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "unreachable")
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf)

	notify.Warning(n, "Project Budget Locked", "Project budget locked to match the total cost of required roles.")
	notify.Success(n, "Action Successful", "")

	out := buf.String()
	assert.Contains(t, out, "▲ Project Budget Locked")
	assert.Contains(t, out, "total cost of required roles")
	assert.Contains(t, out, "✔ Action Successful")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{StyleRed.Render("x"), "1"},
		{"long cell", "2"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$30.00", Money(decimal.NewFromInt(30)))
	assert.Contains(t, AmountText(""), "--")
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Sending gig")
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "Sending gig")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
