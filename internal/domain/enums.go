package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the supported visibilities.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type GigStatus string

const (
	GigStatusNew        GigStatus = ""
	GigStatusDraft      GigStatus = "draft"
	GigStatusPending    GigStatus = "pending"
	GigStatusPublished  GigStatus = "published"
	GigStatusInProgress GigStatus = "in_progress"
	GigStatusCompleted  GigStatus = "completed"
	GigStatusCancelled  GigStatus = "cancelled"
	GigStatusArchived   GigStatus = "archived"
)

// Unpublished reports whether the gig has not gone live yet. Only unpublished
// gigs are held to the future start date rule.
func (s GigStatus) Unpublished() bool {
	switch s {
	case GigStatusNew, GigStatusDraft, GigStatusPending:
		return true
	default:
		return false
	}
}

type Workload string

const (
	WorkloadFixedHours Workload = "fixed_hours"
	WorkloadFlexible   Workload = "flexible"
)

// WorkloadOptions lists the workloads offered by the role form.
var WorkloadOptions = []Workload{WorkloadFixedHours, WorkloadFlexible}

// Label returns the human readable workload name.
func (w Workload) Label() string {
	switch w {
	case WorkloadFixedHours:
		return "Fixed Hours"
	case WorkloadFlexible:
		return "Flexible"
	default:
		return string(w)
	}
}

type PaymentPlan string

const (
	PaymentFullUpfront PaymentPlan = "full_upfront"
	PaymentSplit5050   PaymentPlan = "split_50_50"
	PaymentSplit6040   PaymentPlan = "split_60_40"
	PaymentSplit7030   PaymentPlan = "split_70_30"
	PaymentSplit304030 PaymentPlan = "split_30_40_30"
	PaymentSplit403030 PaymentPlan = "split_40_30_30"
	PaymentSplit503020 PaymentPlan = "split_50_30_20"
)

// DefaultPaymentPlan is used when a role does not specify one.
const DefaultPaymentPlan = PaymentSplit5050

// PaymentPlans lists every supported plan in display order.
var PaymentPlans = []PaymentPlan{
	PaymentFullUpfront,
	PaymentSplit5050, PaymentSplit6040, PaymentSplit7030,
	PaymentSplit304030, PaymentSplit403030, PaymentSplit503020,
}

// Valid reports whether p is a known plan.
func (p PaymentPlan) Valid() bool {
	for _, known := range PaymentPlans {
		if p == known {
			return true
		}
	}
	return false
}

// IsSplit reports whether the plan pays out in more than one installment.
func (p PaymentPlan) IsSplit() bool {
	return strings.HasPrefix(string(p), "split_")
}

// Percentages returns the installment split, e.g. [50 30 20]. Full upfront
// is [100].
func (p PaymentPlan) Percentages() ([]int, error) {
	if !p.IsSplit() {
		if p == PaymentFullUpfront {
			return []int{100}, nil
		}
		return nil, fmt.Errorf("unknown payment plan %q", p)
	}
	parts := strings.Split(strings.TrimPrefix(string(p), "split_"), "_")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("payment plan %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Installments returns the number of payouts for the plan.
func (p PaymentPlan) Installments() int {
	pcts, err := p.Percentages()
	if err != nil {
		return 0
	}
	return len(pcts)
}

// Label renders the plan the way the marketplace displays it.
func (p PaymentPlan) Label() string {
	if p == PaymentFullUpfront {
		return "Full Upfront"
	}
	pcts, err := p.Percentages()
	if err != nil {
		return string(p)
	}
	parts := make([]string, len(pcts))
	for i, v := range pcts {
		parts[i] = fmt.Sprintf("%d%%", v)
	}
	return "Split " + strings.Join(parts, " / ")
}
