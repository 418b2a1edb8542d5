// Package directory presents the two people/company data providers
// behind one capability surface. Adapters absorb provider failures:
// "not found", "pending", sentinel placeholders, and transport errors
// all come back as empty results, never as errors, so callers can chain
// fallbacks without branching on failure modes.
package directory

import (
	"context"

	"github.com/scop-vc/enrich-cli/internal/model"
)

// Person is a provider-agnostic person record. Pending means the
// provider acknowledged the person but has not finished enriching them.
type Person struct {
	ID          string
	FullName    string
	FirstName   string
	LastName    string
	Title       string
	Email       string
	LinkedInURL string
	Pending     bool
}

// Directory is the uniform read surface over one provider.
type Directory interface {
	// Name identifies the provider in logs.
	Name() string

	// CompanyByDomain resolves a company record. The returned record's
	// Domain is always the requested domain, regardless of what the
	// provider echoes.
	CompanyByDomain(ctx context.Context, domain string) *model.Company

	// SearchFounders lists founder/executive candidates for a domain.
	SearchFounders(ctx context.Context, domain string) []Person

	// EnrichPerson fetches the full record for one person id.
	EnrichPerson(ctx context.Context, personID string) *Person

	// PersonByProfileURL looks a person up by professional-network URL.
	PersonByProfileURL(ctx context.Context, url string) *Person

	// PersonByName looks a person up by name within a company domain.
	PersonByName(ctx context.Context, firstName, lastName, domain string) *Person

	// PersonEmail fetches a contact email for a person id. Sentinel and
	// pending values come back as "".
	PersonEmail(ctx context.Context, personID, kind string) string
}
