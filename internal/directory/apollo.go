package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/scop-vc/enrich-cli/internal/model"
	"github.com/scop-vc/enrich-cli/pkg/apollo"
)

// apolloDirectory adapts the Apollo API to the Directory surface.
// Apollo is the secondary provider, used for domain-wide founder search
// and as the email fallback.
type apolloDirectory struct {
	client apollo.Client
	titles []string
}

// NewApollo wraps an Apollo client as a Directory. titles is the
// founder/executive title allowlist applied to SearchFounders.
func NewApollo(client apollo.Client, titles []string) Directory {
	return &apolloDirectory{client: client, titles: titles}
}

func (d *apolloDirectory) Name() string { return "apollo" }

func (d *apolloDirectory) CompanyByDomain(ctx context.Context, domain string) *model.Company {
	org, err := d.client.OrganizationByDomain(ctx, domain)
	if err != nil {
		zap.L().Warn("apollo: organization lookup failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}
	if org == nil {
		return nil
	}
	return &model.Company{
		ID:               org.ID,
		Name:             org.Name,
		Domain:           domain, // requested domain wins over provider echo
		ShortDescription: org.ShortDescription,
		Keywords:         org.Keywords,
		Industry:         org.Industry,
		Location:         joinLocation(org.City, org.State),
		EmployeeCount:    org.EstimatedNumEmployees,
		LinkedInURL:      normalizeURL(org.LinkedInURL),
		WebsiteURL:       org.WebsiteURL,
		FoundedYear:      org.FoundedYear,
	}
}

func (d *apolloDirectory) SearchFounders(ctx context.Context, domain string) []Person {
	people, err := d.client.SearchPeople(ctx, apollo.SearchPeopleRequest{
		Domain: domain,
		Titles: d.titles,
	})
	if err != nil {
		zap.L().Warn("apollo: people search failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}
	out := make([]Person, 0, len(people))
	for i := range people {
		if p := fromApolloPerson(&people[i]); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (d *apolloDirectory) EnrichPerson(ctx context.Context, personID string) *Person {
	raw, err := d.client.MatchPerson(ctx, apollo.MatchRequest{ID: personID})
	if err != nil {
		zap.L().Warn("apollo: person match failed", zap.String("person_id", personID), zap.Error(err))
		return nil
	}
	return fromApolloPerson(raw)
}

func (d *apolloDirectory) PersonByProfileURL(ctx context.Context, url string) *Person {
	if url == "" {
		return nil
	}
	raw, err := d.client.MatchPerson(ctx, apollo.MatchRequest{LinkedInURL: url})
	if err != nil {
		zap.L().Warn("apollo: linkedin match failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	return fromApolloPerson(raw)
}

func (d *apolloDirectory) PersonByName(ctx context.Context, firstName, lastName, domain string) *Person {
	if firstName == "" || lastName == "" {
		return nil
	}
	raw, err := d.client.MatchPerson(ctx, apollo.MatchRequest{
		FirstName:          firstName,
		LastName:           lastName,
		OrganizationDomain: domain,
	})
	if err != nil {
		zap.L().Warn("apollo: name match failed",
			zap.String("name", firstName+" "+lastName),
			zap.String("domain", domain),
			zap.Error(err),
		)
		return nil
	}
	return fromApolloPerson(raw)
}

func (d *apolloDirectory) PersonEmail(ctx context.Context, personID, kind string) string {
	person := d.EnrichPerson(ctx, personID)
	if person == nil {
		return ""
	}
	return person.Email
}

func fromApolloPerson(raw *apollo.Person) *Person {
	if raw == nil {
		return nil
	}
	p := &Person{
		ID:          raw.ID,
		FullName:    raw.Name,
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Title:       raw.Title,
		LinkedInURL: normalizeURL(raw.LinkedInURL),
	}
	// The locked-email placeholder means "exists but inaccessible".
	if raw.Email != "" && raw.Email != apollo.SentinelEmail {
		p.Email = raw.Email
	}
	if p.FirstName == "" && p.FullName != "" {
		p.FirstName, p.LastName = model.SplitFullName(p.FullName)
	}
	return p
}
