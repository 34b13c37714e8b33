package domain

import (
	"encoding/json"
	"time"
)

type DraftKind string

const (
	DraftGig      DraftKind = "gig"
	DraftProposal DraftKind = "proposal"
)

// DraftStatus is the local lifecycle of a stored draft, independent of the
// gig status the server tracks.
type DraftStatus string

const (
	DraftEditing   DraftStatus = "editing"
	DraftSubmitted DraftStatus = "submitted"
	DraftRejected  DraftStatus = "rejected"
)

// Draft is a locally stored gig or proposal. Body holds the JSON document
// (a GigDraft or a ProposalDraft).
type Draft struct {
	ID        string
	Kind      DraftKind
	Title     string
	Status    DraftStatus
	Body      json.RawMessage
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProposalDraft is the stored state of a proposal being written.
type ProposalDraft struct {
	Gig          *GigDraft          `json:"gig"`
	Deliverables []DeliverableEntry `json:"deliverables"`
	Applications []AppliedRoleEntry `json:"applications,omitempty"`
	ProjectRole  *AppliedRoleEntry  `json:"project_role,omitempty"`
}

// Submission records one submit attempt of a draft.
type Submission struct {
	ID          string
	DraftID     string
	Action      string
	Outcome     string
	StatusCode  int
	Message     string
	RedirectURL string
	CreatedAt   time.Time
}
