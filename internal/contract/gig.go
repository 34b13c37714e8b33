// Package contract holds the canonical JSON payloads exchanged with the
// marketplace backend. Field names follow the server, not the editor.
package contract

import "fmt"

// Action selects what the server does with a submitted gig.
type Action string

const (
	ActionPublish Action = "publish"
	ActionDraft   Action = "draft"
)

// ParseAction validates a user supplied action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPublish, ActionDraft:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q (expected publish or draft)", s)
	}
}

// GigSubmission is the body POSTed to create or update a gig.
type GigSubmission struct {
	Action  Action     `json:"action" binding:"required,oneof=publish draft"`
	Payload GigPayload `json:"payload" binding:"required"`
}

// GigPayload is the canonical gig schema.
type GigPayload struct {
	Title         string    `json:"title" binding:"required,max=320"`
	Description   string    `json:"description" binding:"required,max=3000"`
	ProjectBudget float64   `json:"projectBudget" binding:"gt=0"`
	Visibility    string    `json:"visibility" binding:"required,oneof=public private"`
	StartDate     string    `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate       string    `json:"endDate" binding:"required,datetime=2006-01-02"`
	IsNegotiable  bool      `json:"isNegotiable"`
	Roles         []GigRole `json:"roles" binding:"dive"`
}

// GigRole is one role in a gig payload. Missing ids are sent as null.
type GigRole struct {
	NicheID        *int64  `json:"nicheId" binding:"required,gt=0"`
	Niche          string  `json:"niche"`
	ProfessionalID *int64  `json:"professionalId" binding:"required,gt=0"`
	Professional   string  `json:"professional" binding:"max=90"`
	Budget         float64 `json:"budget" binding:"gte=30"`
	Description    string  `json:"description" binding:"max=730"`
	Workload       string  `json:"workload"`
}
