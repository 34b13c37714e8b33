package contract

import "time"

// ProposalSubmission is the body POSTed when a professional sends a proposal.
type ProposalSubmission struct {
	Deliverables  []Deliverable `json:"deliverables" binding:"required,min=1,dive"`
	AppliedRoles  []AppliedRole `json:"applied_roles" binding:"required,min=1,dive"`
	ProposalValue float64       `json:"proposal_value" binding:"gt=0"`
	SentAt        time.Time     `json:"sent_at" binding:"required"`
}

// Deliverable is the wire form of a deliverable line.
type Deliverable struct {
	Description   string `json:"description" binding:"required,max=2000"`
	DurationUnit  string `json:"duration_unit" binding:"required,oneof=days weeks months"`
	DurationValue int    `json:"duration_value" binding:"required,gte=1"`
	DueDate       string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// AppliedRole is the wire form of a role application. Amounts are pointers
// so an amount that was never entered is sent as null.
type AppliedRole struct {
	IndustryID     int64    `json:"industry_id" binding:"required"`
	NicheID        int64    `json:"niche_id" binding:"required"`
	RoleAmount     *float64 `json:"role_amount" binding:"required,gt=0"`
	ProposedAmount *float64 `json:"proposed_amount"`
	PaymentPlan    string   `json:"payment_plan"`
}
