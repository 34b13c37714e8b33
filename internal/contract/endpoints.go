package contract

import "fmt"

// Marketplace routes, relative to the backend base URL.
const (
	CreateGigPath   = "/collaboration/new-collaborations"
	updateGigPath   = "/collaboration/modify/%s/"
	acceptOfferPath = "/collaboration/opportunities/accept-offer/%s/"
	TaxonomyPath    = "/reference/taxonomy"
)

// GigEndpoint returns the create route for a new gig and the modify route
// for an existing one.
func GigEndpoint(slug string) string {
	if slug == "" {
		return CreateGigPath
	}
	return fmt.Sprintf(updateGigPath, slug)
}

// ProposalEndpoint returns the accept-offer route of a gig.
func ProposalEndpoint(gigSlug string) string {
	return fmt.Sprintf(acceptOfferPath, gigSlug)
}
